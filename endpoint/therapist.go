package endpoint

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pijatjogja/pijatjogja-api/model"
	"github.com/pijatjogja/pijatjogja-api/util"
)

type therapistListQuery struct {
	Page   int
	Limit  int
	Status string
	Search string
}

func parseTherapistListQuery(c *gin.Context) therapistListQuery {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return therapistListQuery{
		Page:   page,
		Limit:  limit,
		Status: c.Query("status"),
		Search: c.Query("search"),
	}
}

// therapistWithRegistration carries the originating registration's submission
// time alongside the therapist row for the admin list view.
type therapistWithRegistration struct {
	model.Therapist
	RegistrationSubmittedAt *time.Time `json:"registration_submitted_at" gorm:"column:registration_submitted_at"`
}

func fetchTherapists(db *gorm.DB, q therapistListQuery) ([]therapistWithRegistration, int64, error) {
	var therapists []therapistWithRegistration
	var total int64

	base := db.Model(&model.Therapist{})
	if q.Status != "" && q.Status != "all" {
		base = base.Where("therapists.status = ?", q.Status)
	}
	if q.Search != "" {
		kw := "%" + q.Search + "%"
		base = base.Where("therapists.full_name LIKE ? OR therapists.whatsapp LIKE ? OR therapists.address LIKE ?", kw, kw, kw)
	}

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := base.
		Select("therapists.*, therapist_registrations.submitted_at AS registration_submitted_at").
		Joins("LEFT JOIN therapist_registrations ON therapist_registrations.id = therapists.registration_id").
		Order("therapists.joined_at DESC").
		Limit(q.Limit).
		Offset((q.Page - 1) * q.Limit).
		Find(&therapists).Error
	if err != nil {
		return nil, 0, err
	}
	return therapists, total, nil
}

// ListTherapists godoc
// @Summary      List therapists
// @Description  Get a paginated list of therapists with optional status filter and keyword search
// @Tags         Therapist
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        page query int false "Page number (default 1)"
// @Param        limit query int false "Page size (default 10)"
// @Param        status query string false "Filter by status: ACTIVE|INACTIVE|SUSPENDED|all"
// @Param        search query string false "Search keyword for name, whatsapp, or address"
// @Success      200 {object} util.APIResponse{data=object} "Therapists retrieved"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /therapist [get]
func ListTherapists(c *gin.Context) {
	q := parseTherapistListQuery(c)

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	therapists, total, err := fetchTherapists(db, q)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to retrieve therapists",
			Err: err,
		})
		return
	}

	pages := total / int64(q.Limit)
	if total%int64(q.Limit) != 0 {
		pages++
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Therapists retrieved",
		Data: map[string]interface{}{
			"therapists": therapists,
			"pagination": map[string]interface{}{
				"page":  q.Page,
				"limit": q.Limit,
				"total": total,
				"pages": pages,
			},
		},
	})
}

type createTherapistRequest struct {
	FullName     string `json:"full_name" binding:"required"`
	WhatsApp     string `json:"whatsapp" binding:"required"`
	Address      string `json:"address" binding:"required"`
	Gender       string `json:"gender" binding:"required"`
	Experience   string `json:"experience" binding:"required"`
	WorkArea     string `json:"work_area" binding:"required"`
	Availability string `json:"availability" binding:"required"`
	Message      string `json:"message"`
	Status       string `json:"status"`
}

// CreateTherapist godoc
// @Summary      Add a therapist manually
// @Description  Create a therapist record without a registration (walk-in partner)
// @Tags         Therapist
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        request body createTherapistRequest true "Therapist details"
// @Success      200 {object} util.APIResponse{data=model.Therapist} "Therapist created"
// @Failure      400 {object} util.APIResponse "Invalid payload"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /therapist [post]
func CreateTherapist(c *gin.Context) {
	var req createTherapistRequest
	if !bindJSONOrRespond(c, &req, "Invalid request body") {
		return
	}

	whatsapp := util.NormalizeWhatsAppNumber(req.WhatsApp)
	if !util.ValidWhatsAppNumber(whatsapp) {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Format nomor WhatsApp tidak valid",
			Err: fmt.Errorf("invalid whatsapp number"),
		})
		return
	}

	status := req.Status
	if status == "" {
		status = model.TherapistActive
	}
	if !model.ValidTherapistStatus(status) {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Status tidak valid",
			Err: fmt.Errorf("unknown therapist status %q", status),
		})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	therapist := model.Therapist{
		FullName:     util.NormalizeName(req.FullName),
		WhatsApp:     whatsapp,
		Address:      req.Address,
		Gender:       req.Gender,
		Experience:   req.Experience,
		WorkArea:     req.WorkArea,
		Availability: req.Availability,
		Message:      req.Message,
		Status:       status,
	}

	if err := db.Create(&therapist).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Terjadi kesalahan saat menambah terapis",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Terapis berhasil ditambahkan",
		Data: therapist,
	})
}

type updateTherapistRequest struct {
	FullName     *string `json:"full_name"`
	WhatsApp     *string `json:"whatsapp"`
	Address      *string `json:"address"`
	Gender       *string `json:"gender"`
	Experience   *string `json:"experience"`
	WorkArea     *string `json:"work_area"`
	Availability *string `json:"availability"`
	Message      *string `json:"message"`
	Status       *string `json:"status"`
}

func (req updateTherapistRequest) updates() map[string]interface{} {
	updates := map[string]interface{}{}
	set := func(column string, v *string) {
		if v != nil {
			updates[column] = *v
		}
	}
	set("full_name", req.FullName)
	set("whatsapp", req.WhatsApp)
	set("address", req.Address)
	set("gender", req.Gender)
	set("experience", req.Experience)
	set("work_area", req.WorkArea)
	set("availability", req.Availability)
	set("message", req.Message)
	set("status", req.Status)
	return updates
}

// UpdateTherapist godoc
// @Summary      Update a therapist
// @Description  Update therapist profile fields and toggle the ACTIVE/INACTIVE/SUSPENDED status
// @Tags         Therapist
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Therapist ID"
// @Param        request body updateTherapistRequest true "Fields to update"
// @Success      200 {object} util.APIResponse{data=model.Therapist} "Therapist updated"
// @Failure      400 {object} util.APIResponse "Invalid status"
// @Failure      404 {object} util.APIResponse "Therapist not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /therapist/{id} [patch]
func UpdateTherapist(c *gin.Context) {
	id := c.Param("id")

	var req updateTherapistRequest
	if !bindJSONOrRespond(c, &req, "Invalid request body") {
		return
	}

	if req.Status != nil && !model.ValidTherapistStatus(*req.Status) {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Status tidak valid",
			Err: fmt.Errorf("unknown therapist status %q", *req.Status),
		})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var therapist model.Therapist
	if err := db.First(&therapist, "id = ?", id).Error; err != nil {
		util.CallErrorNotFound(c, util.APIErrorParams{
			Msg: "Terapis tidak ditemukan",
			Err: err,
		})
		return
	}

	updates := req.updates()
	if len(updates) > 0 {
		if err := db.Model(&therapist).Updates(updates).Error; err != nil {
			util.CallServerError(c, util.APIErrorParams{
				Msg: "Terjadi kesalahan saat memperbarui data terapis",
				Err: err,
			})
			return
		}
	}

	if err := db.First(&therapist, "id = ?", id).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to reload therapist",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Data terapis berhasil diperbarui",
		Data: therapist,
	})
}

// DeleteTherapist godoc
// @Summary      Delete a therapist
// @Tags         Therapist
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Therapist ID"
// @Success      200 {object} util.APIResponse "Therapist deleted"
// @Failure      404 {object} util.APIResponse "Therapist not found"
// @Router       /therapist/{id} [delete]
func DeleteTherapist(c *gin.Context) {
	id := c.Param("id")

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var therapist model.Therapist
	if err := db.First(&therapist, "id = ?", id).Error; err != nil {
		util.CallErrorNotFound(c, util.APIErrorParams{
			Msg: "Terapis tidak ditemukan",
			Err: err,
		})
		return
	}

	if err := db.Delete(&therapist).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Terjadi kesalahan saat menghapus terapis",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Terapis berhasil dihapus",
	})
}
