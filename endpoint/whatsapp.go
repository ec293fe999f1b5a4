package endpoint

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/pijatjogja/pijatjogja-api/model"
	"github.com/pijatjogja/pijatjogja-api/util"
)

// ListWhatsAppTemplates godoc
// @Summary      List WhatsApp message templates
// @Tags         WhatsApp
// @Produce      json
// @Security     SessionToken
// @Success      200 {object} util.APIResponse{data=[]model.WhatsAppTemplate} "Templates retrieved"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /whatsapp-template [get]
func ListWhatsAppTemplates(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var templates []model.WhatsAppTemplate
	if err := db.Order("type ASC").Find(&templates).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Terjadi kesalahan saat mengambil data",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Templates retrieved",
		Data: templates,
	})
}

type updateTemplateRequest struct {
	ID       uint   `json:"id" binding:"required"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	IsActive *bool  `json:"is_active"`
}

type updateTemplatesRequest struct {
	Templates []updateTemplateRequest `json:"templates" binding:"required"`
}

// UpdateWhatsAppTemplates godoc
// @Summary      Bulk-update WhatsApp templates
// @Description  Update title, message and active flag of multiple templates at once
// @Tags         WhatsApp
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        request body updateTemplatesRequest true "Templates to update"
// @Success      200 {object} util.APIResponse{data=[]model.WhatsAppTemplate} "Templates updated"
// @Failure      400 {object} util.APIResponse "Invalid payload"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /whatsapp-template [put]
func UpdateWhatsAppTemplates(c *gin.Context) {
	var req updateTemplatesRequest
	if !bindJSONOrRespond(c, &req, "Data harus berupa array template") {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	for _, tpl := range req.Templates {
		updates := map[string]interface{}{}
		if tpl.Title != "" {
			updates["title"] = tpl.Title
		}
		if tpl.Message != "" {
			updates["message"] = tpl.Message
		}
		if tpl.IsActive != nil {
			updates["is_active"] = *tpl.IsActive
		}
		if len(updates) == 0 {
			continue
		}
		if err := db.Model(&model.WhatsAppTemplate{}).Where("id = ?", tpl.ID).Updates(updates).Error; err != nil {
			util.CallServerError(c, util.APIErrorParams{
				Msg: fmt.Sprintf("Gagal memperbarui template %d", tpl.ID),
				Err: err,
			})
			return
		}
	}

	var templates []model.WhatsAppTemplate
	if err := db.Order("type ASC").Find(&templates).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Terjadi kesalahan saat mengambil data",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Template berhasil diperbarui",
		Data: templates,
	})
}
