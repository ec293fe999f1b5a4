package endpoint

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/pijatjogja/pijatjogja-api/model"
	"github.com/pijatjogja/pijatjogja-api/util"
)

// ListContacts godoc
// @Summary      List public contact channels
// @Description  Active contact entries for the marketing page (no authentication required)
// @Tags         Contact
// @Produce      json
// @Success      200 {object} util.APIResponse{data=[]model.ContactInfo} "Contacts retrieved"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /contact [get]
func ListContacts(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var contacts []model.ContactInfo
	if err := db.Where("is_active = ?", true).Order("type ASC").Find(&contacts).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Terjadi kesalahan saat mengambil data",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Contacts retrieved",
		Data: contacts,
	})
}

type updateContactRequest struct {
	ID             uint   `json:"id" binding:"required"`
	Label          string `json:"label"`
	Value          string `json:"value"`
	DefaultMessage string `json:"default_message"`
	IsActive       *bool  `json:"is_active"`
}

type updateContactsRequest struct {
	Contacts []updateContactRequest `json:"contacts" binding:"required"`
}

// UpdateContacts godoc
// @Summary      Bulk-update contact channels
// @Tags         Contact
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        request body updateContactsRequest true "Contacts to update"
// @Success      200 {object} util.APIResponse{data=[]model.ContactInfo} "Contacts updated"
// @Failure      400 {object} util.APIResponse "Invalid payload"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /contact [put]
func UpdateContacts(c *gin.Context) {
	var req updateContactsRequest
	if !bindJSONOrRespond(c, &req, "Data harus berupa array kontak") {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	for _, contact := range req.Contacts {
		updates := map[string]interface{}{}
		if contact.Label != "" {
			updates["label"] = contact.Label
		}
		if contact.Value != "" {
			updates["value"] = contact.Value
		}
		if contact.DefaultMessage != "" {
			updates["default_message"] = contact.DefaultMessage
		}
		if contact.IsActive != nil {
			updates["is_active"] = *contact.IsActive
		}
		if len(updates) == 0 {
			continue
		}
		if err := db.Model(&model.ContactInfo{}).Where("id = ?", contact.ID).Updates(updates).Error; err != nil {
			util.CallServerError(c, util.APIErrorParams{
				Msg: fmt.Sprintf("Gagal memperbarui kontak %d", contact.ID),
				Err: err,
			})
			return
		}
	}

	var contacts []model.ContactInfo
	if err := db.Order("type ASC").Find(&contacts).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Terjadi kesalahan saat mengambil data",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Kontak berhasil diperbarui",
		Data: contacts,
	})
}
