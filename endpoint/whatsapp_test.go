package endpoint

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pijatjogja/pijatjogja-api/model"
)

func TestListWhatsAppTemplates_ReturnsSeededDefaults(t *testing.T) {
	r, db := setupEndpointTest(t)

	assert.NoError(t, model.SeedWhatsAppTemplates(db))

	w, response, err := doRequestWithHandler(r, requestSpec{method: http.MethodGet, registerPath: "/whatsapp-template", requestPath: "/whatsapp-template", handler: ListWhatsAppTemplates})
	assert.NoError(t, err)
	assertSuccessResponse(t, w, response)

	templates := response["data"].([]interface{})
	assert.Len(t, templates, 3)
}

func TestUpdateWhatsAppTemplates_Success(t *testing.T) {
	r, db := setupEndpointTest(t)

	assert.NoError(t, model.SeedWhatsAppTemplates(db))

	var tpl model.WhatsAppTemplate
	assert.NoError(t, db.Where("type = ?", model.TemplateRegistrationApproved).First(&tpl).Error)

	inactive := false
	reqBody := map[string]interface{}{
		"templates": []map[string]interface{}{
			{"id": tpl.ID, "message": "Selamat bergabung dengan PijatJogja!", "is_active": inactive},
		},
	}

	w, _, err := doRequestWithHandler(r, requestSpec{method: http.MethodPut, registerPath: "/whatsapp-template", requestPath: "/whatsapp-template", handler: UpdateWhatsAppTemplates, body: reqBody})
	assert.NoError(t, err)
	assertStatus(t, w, http.StatusOK)

	var updated model.WhatsAppTemplate
	assert.NoError(t, db.First(&updated, tpl.ID).Error)
	assert.Equal(t, "Selamat bergabung dengan PijatJogja!", updated.Message)
	assert.False(t, updated.IsActive)
	assert.Equal(t, tpl.Title, updated.Title)
}

func TestUpdateWhatsAppTemplates_InvalidPayload(t *testing.T) {
	r, db := setupEndpointTest(t)
	_ = db
	w, _, err := doRequestWithHandler(r, requestSpec{method: http.MethodPut, registerPath: "/whatsapp-template", requestPath: "/whatsapp-template", handler: UpdateWhatsAppTemplates, body: map[string]interface{}{"templates": "oops"}})
	assert.NoError(t, err)
	assertStatus(t, w, http.StatusBadRequest)
}
