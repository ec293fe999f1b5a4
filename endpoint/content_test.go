package endpoint

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/pijatjogja/pijatjogja-api/model"
)

func contentPath(id uint) string {
	return fmt.Sprintf("/content/%d", id)
}

func createTestContent(db *gorm.DB, t *testing.T, key, contentType string, order int) model.Content {
	t.Helper()
	content := model.Content{
		Key:         key,
		Title:       "Judul " + key,
		Content:     "Isi konten " + key,
		Type:        contentType,
		Order:       order,
		IsPublished: true,
	}
	assert.NoError(t, db.Create(&content).Error)
	return content
}

func TestListContents_FiltersByType(t *testing.T) {
	r, db := setupEndpointTest(t)

	createTestContent(db, t, "hero-title", "landing", 1)
	createTestContent(db, t, "faq-1", "faq", 2)

	w, response, err := doRequestWithHandler(r, requestSpec{method: http.MethodGet, registerPath: "/content", requestPath: "/content?type=faq", handler: ListContents})
	assert.NoError(t, err)
	assertSuccessResponse(t, w, response)

	data := response["data"].(map[string]interface{})
	contents := data["contents"].([]interface{})
	assert.Len(t, contents, 1)
	first := contents[0].(map[string]interface{})
	assert.Equal(t, "faq-1", first["key"])
}

func TestListContents_OrderedByDisplayOrder(t *testing.T) {
	r, db := setupEndpointTest(t)

	createTestContent(db, t, "second", "landing", 2)
	createTestContent(db, t, "first", "landing", 1)

	w, response, err := doRequestWithHandler(r, requestSpec{method: http.MethodGet, registerPath: "/content", requestPath: "/content", handler: ListContents})
	assert.NoError(t, err)
	assertSuccessResponse(t, w, response)

	data := response["data"].(map[string]interface{})
	contents := data["contents"].([]interface{})
	assert.Len(t, contents, 2)
	first := contents[0].(map[string]interface{})
	assert.Equal(t, "first", first["key"])
}

func TestCreateContent_Success(t *testing.T) {
	r, db := setupEndpointTest(t)

	reqBody := map[string]interface{}{
		"key":      "hero-title",
		"title":    "Pijat Panggilan Jogja",
		"content":  "Layanan pijat profesional di rumah Anda",
		"type":     "landing",
		"order":    1,
		"metadata": map[string]interface{}{"icon": "massage"},
	}

	w, response, err := doRequestWithHandler(r, requestSpec{method: http.MethodPost, registerPath: "/content", requestPath: "/content", handler: CreateContent, body: reqBody})
	assert.NoError(t, err)
	assertSuccessResponse(t, w, response)

	var saved model.Content
	assert.NoError(t, db.Where("key = ?", "hero-title").First(&saved).Error)
	assert.True(t, saved.IsPublished)
	assert.NotEmpty(t, saved.Metadata)
}

func TestCreateContent_MissingFields(t *testing.T) {
	r, db := setupEndpointTest(t)
	_ = db
	w, _, err := doRequestWithHandler(r, requestSpec{method: http.MethodPost, registerPath: "/content", requestPath: "/content", handler: CreateContent, body: map[string]interface{}{"key": "incomplete"}})
	assert.NoError(t, err)
	assertStatus(t, w, http.StatusBadRequest)
}

func TestUpdateContent_Success(t *testing.T) {
	r, db := setupEndpointTest(t)

	content := createTestContent(db, t, "hero-title", "landing", 1)

	unpublished := false
	reqBody := map[string]interface{}{
		"title":        "Judul Baru",
		"is_published": unpublished,
	}

	w, _, err := doRequestWithHandler(r, requestSpec{method: http.MethodPatch, registerPath: "/content/:id", requestPath: contentPath(content.ID), handler: UpdateContent, body: reqBody})
	assert.NoError(t, err)
	assertStatus(t, w, http.StatusOK)

	var updated model.Content
	assert.NoError(t, db.First(&updated, content.ID).Error)
	assert.Equal(t, "Judul Baru", updated.Title)
	assert.False(t, updated.IsPublished)
	assert.Equal(t, content.Content, updated.Content)
}

func TestUpdateContent_NotFound(t *testing.T) {
	r, db := setupEndpointTest(t)
	_ = db
	w, _, err := doRequestWithHandler(r, requestSpec{method: http.MethodPatch, registerPath: "/content/:id", requestPath: "/content/99999", handler: UpdateContent, body: map[string]interface{}{"title": "x"}})
	assert.NoError(t, err)
	assertStatus(t, w, http.StatusNotFound)
}

func TestDeleteContent_Success(t *testing.T) {
	r, db := setupEndpointTest(t)

	content := createTestContent(db, t, "hero-title", "landing", 1)

	w, _, err := doRequestWithHandler(r, requestSpec{method: http.MethodDelete, registerPath: "/content/:id", requestPath: contentPath(content.ID), handler: DeleteContent, body: nil})
	assert.NoError(t, err)
	assertStatus(t, w, http.StatusOK)

	var count int64
	assert.NoError(t, db.Model(&model.Content{}).Where("id = ?", content.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
