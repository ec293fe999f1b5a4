package endpoint

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pijatjogja/pijatjogja-api/middleware"
	"github.com/pijatjogja/pijatjogja-api/model"
	"github.com/pijatjogja/pijatjogja-api/util"
)

type submitRegistrationRequest struct {
	FullName     string `json:"full_name" binding:"required" example:"Siti Aminah"`
	WhatsApp     string `json:"whatsapp" binding:"required" example:"081234567890"`
	Address      string `json:"address" binding:"required" example:"Jl. Malioboro 10"`
	Gender       string `json:"gender" binding:"required" example:"Perempuan"`
	Experience   string `json:"experience" binding:"required" example:"3 tahun"`
	WorkArea     string `json:"work_area" binding:"required" example:"Sleman"`
	Availability string `json:"availability" binding:"required" example:"Senin-Jumat"`
	Message      string `json:"message"`
}

// SubmitRegistration godoc
// @Summary      Submit a therapist registration
// @Description  Public endpoint for the partner registration form. New registrations start as PENDING.
// @Tags         Registration
// @Accept       json
// @Produce      json
// @Param        request body submitRegistrationRequest true "Registration details"
// @Success      200 {object} util.APIResponse "Registration submitted"
// @Failure      400 {object} util.APIResponse "Invalid payload or WhatsApp number"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /register [post]
func SubmitRegistration(c *gin.Context) {
	var req submitRegistrationRequest
	if !bindJSONOrRespond(c, &req, "Semua field wajib diisi kecuali pesan tambahan") {
		return
	}

	whatsapp := util.NormalizeWhatsAppNumber(req.WhatsApp)
	if !util.ValidWhatsAppNumber(whatsapp) {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Format nomor WhatsApp tidak valid. Gunakan format 08xx-xxxx-xxxx",
			Err: fmt.Errorf("invalid whatsapp number"),
		})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	registration := model.Registration{
		FullName:     util.NormalizeName(req.FullName),
		WhatsApp:     whatsapp,
		Address:      req.Address,
		Gender:       req.Gender,
		Experience:   req.Experience,
		WorkArea:     req.WorkArea,
		Availability: req.Availability,
		Message:      req.Message,
		Status:       model.RegistrationPending,
	}

	if err := db.Create(&registration).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Terjadi kesalahan saat memproses pendaftaran. Silakan coba lagi.",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Pendaftaran berhasil dikirim! Tim kami akan menghubungi Anda dalam 1x24 jam.",
		Data: map[string]interface{}{"registration_id": registration.ID},
	})
}

type registrationListQuery struct {
	Page   int
	Limit  int
	Status string
	Search string
}

func parseRegistrationListQuery(c *gin.Context) registrationListQuery {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return registrationListQuery{
		Page:   page,
		Limit:  limit,
		Status: c.Query("status"),
		Search: c.Query("search"),
	}
}

func fetchRegistrations(db *gorm.DB, q registrationListQuery) ([]model.Registration, int64, error) {
	var registrations []model.Registration
	var total int64

	query := db.Model(&model.Registration{})
	if q.Status != "" && q.Status != "all" {
		query = query.Where("status = ?", q.Status)
	}
	if q.Search != "" {
		kw := "%" + q.Search + "%"
		query = query.Where("full_name LIKE ? OR whatsapp LIKE ? OR address LIKE ?", kw, kw, kw)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("submitted_at DESC").
		Limit(q.Limit).
		Offset((q.Page - 1) * q.Limit).
		Find(&registrations).Error
	if err != nil {
		return nil, 0, err
	}
	return registrations, total, nil
}

// ListRegistrations godoc
// @Summary      List therapist registrations
// @Description  Get a paginated list of registrations with optional status filter and keyword search
// @Tags         Registration
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        page query int false "Page number (default 1)"
// @Param        limit query int false "Page size (default 10)"
// @Param        status query string false "Filter by status: PENDING|APPROVED|REJECTED|all"
// @Param        search query string false "Search keyword for name, whatsapp, or address"
// @Success      200 {object} util.APIResponse{data=object} "Registrations retrieved"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /registration [get]
func ListRegistrations(c *gin.Context) {
	q := parseRegistrationListQuery(c)

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	registrations, total, err := fetchRegistrations(db, q)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to retrieve registrations",
			Err: err,
		})
		return
	}

	pages := total / int64(q.Limit)
	if total%int64(q.Limit) != 0 {
		pages++
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Registrations retrieved",
		Data: map[string]interface{}{
			"registrations": registrations,
			"pagination": map[string]interface{}{
				"page":  q.Page,
				"limit": q.Limit,
				"total": total,
				"pages": pages,
			},
		},
	})
}

// GetRegistrationInfo godoc
// @Summary      Get one registration
// @Tags         Registration
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Registration ID"
// @Success      200 {object} util.APIResponse{data=model.Registration} "Registration retrieved"
// @Failure      404 {object} util.APIResponse "Registration not found"
// @Router       /registration/{id} [get]
func GetRegistrationInfo(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var registration model.Registration
	if err := db.First(&registration, "id = ?", c.Param("id")).Error; err != nil {
		util.CallErrorNotFound(c, util.APIErrorParams{
			Msg: "Pendaftaran tidak ditemukan",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Registration retrieved",
		Data: registration,
	})
}

type reviewRegistrationRequest struct {
	Action string `json:"action" binding:"required" example:"APPROVE"`
	Notes  string `json:"notes"`
}

// ReviewRegistration godoc
// @Summary      Review a therapist registration
// @Description  Apply APPROVE, REJECT or PENDING to a registration. Approval provisions the therapist record exactly once.
// @Tags         Registration
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Registration ID"
// @Param        request body reviewRegistrationRequest true "Review action and optional notes"
// @Success      200 {object} util.APIResponse "Status updated"
// @Failure      400 {object} util.APIResponse "Invalid action"
// @Failure      404 {object} util.APIResponse "Registration not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /registration/{id} [patch]
func ReviewRegistration(c *gin.Context) {
	id := c.Param("id")

	var req reviewRegistrationRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	newStatus, ok := model.StatusForAction(req.Action)
	if !ok {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Action tidak valid",
			Err: fmt.Errorf("unknown action %q", req.Action),
		})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	adminID, _ := middleware.GetAdminID(c)

	registration, err := transitionRegistration(db, transitionParams{
		ID:        id,
		NewStatus: newStatus,
		Notes:     req.Notes,
		AdminID:   fmt.Sprintf("%d", adminID),
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.CallErrorNotFound(c, util.APIErrorParams{
			Msg: "Pendaftaran tidak ditemukan",
			Err: err,
		})
		return
	}
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Gagal mengubah status pendaftaran",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: reviewResultMessage(req.Action),
		Data: map[string]interface{}{
			"id":     registration.ID,
			"status": registration.Status,
		},
	})
}

func reviewResultMessage(action string) string {
	switch action {
	case model.ActionApprove:
		return "Pendaftaran berhasil disetujui"
	case model.ActionReject:
		return "Pendaftaran berhasil ditolak"
	}
	return "Pendaftaran berhasil diubah"
}

type transitionParams struct {
	ID        string
	NewStatus string
	Notes     string
	AdminID   string
}

// transitionRegistration applies a validated status transition and, for an
// approval, provisions the linked therapist record. Both writes happen in one
// transaction so a failed provisioning never leaves an approved registration
// without its therapist.
func transitionRegistration(db *gorm.DB, params transitionParams) (model.Registration, error) {
	var registration model.Registration

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&registration, "id = ?", params.ID).Error; err != nil {
			return err
		}

		// Re-deciding an already reviewed registration is allowed but audited.
		if registration.Status != model.RegistrationPending && registration.Status != params.NewStatus {
			util.LogStatusOverride(params.AdminID, registration.ID, registration.Status, params.NewStatus)
		}

		updates := map[string]interface{}{"status": params.NewStatus}
		if params.Notes != "" {
			updates["notes"] = params.Notes
		}
		if err := tx.Model(&registration).Updates(updates).Error; err != nil {
			return err
		}
		registration.Status = params.NewStatus
		if params.Notes != "" {
			registration.Notes = params.Notes
		}

		if params.NewStatus == model.RegistrationApproved {
			return provisionTherapist(tx, registration)
		}
		return nil
	})

	return registration, err
}

// provisionTherapist creates the therapist record derived from an approved
// registration. The unique index on registration_id makes the insert
// idempotent: a conflict means the therapist already exists and is skipped,
// so repeated or concurrent approvals never produce duplicates.
func provisionTherapist(tx *gorm.DB, registration model.Registration) error {
	registrationID := registration.ID
	therapist := model.Therapist{
		RegistrationID: &registrationID,
		FullName:       registration.FullName,
		WhatsApp:       registration.WhatsApp,
		Address:        registration.Address,
		Gender:         registration.Gender,
		Experience:     registration.Experience,
		WorkArea:       registration.WorkArea,
		Availability:   registration.Availability,
		Message:        registration.Message,
		Status:         model.TherapistActive,
	}

	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "registration_id"}},
		DoNothing: true,
	}).Create(&therapist).Error
}
