package endpoint

import (
	"encoding/json"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/pijatjogja/pijatjogja-api/model"
	"github.com/pijatjogja/pijatjogja-api/util"
)

type contentListQuery struct {
	Page   int
	Limit  int
	Type   string
	Key    string
	Search string
}

func parseContentListQuery(c *gin.Context) contentListQuery {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	return contentListQuery{
		Page:   page,
		Limit:  limit,
		Type:   c.Query("type"),
		Key:    c.Query("key"),
		Search: c.Query("search"),
	}
}

func fetchContents(db *gorm.DB, q contentListQuery) ([]model.Content, int64, error) {
	var contents []model.Content
	var total int64

	query := db.Model(&model.Content{})
	if q.Type != "" {
		query = query.Where("type = ?", q.Type)
	}
	if q.Key != "" {
		query = query.Where("key = ?", q.Key)
	}
	if q.Search != "" {
		kw := "%" + q.Search + "%"
		query = query.Where("title LIKE ? OR content LIKE ?", kw, kw)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("display_order ASC, created_at DESC").
		Limit(q.Limit).
		Offset((q.Page - 1) * q.Limit).
		Find(&contents).Error
	if err != nil {
		return nil, 0, err
	}
	return contents, total, nil
}

// ListContents godoc
// @Summary      List page content blocks
// @Tags         Content
// @Produce      json
// @Param        type query string false "Filter by content type"
// @Param        key query string false "Filter by content key"
// @Param        search query string false "Search keyword for title or body"
// @Param        page query int false "Page number (default 1)"
// @Param        limit query int false "Page size (default 20)"
// @Success      200 {object} util.APIResponse{data=object} "Contents retrieved"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /content [get]
func ListContents(c *gin.Context) {
	q := parseContentListQuery(c)

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	contents, total, err := fetchContents(db, q)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Terjadi kesalahan saat mengambil data",
			Err: err,
		})
		return
	}

	pages := total / int64(q.Limit)
	if total%int64(q.Limit) != 0 {
		pages++
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Contents retrieved",
		Data: map[string]interface{}{
			"contents": contents,
			"pagination": map[string]interface{}{
				"page":  q.Page,
				"limit": q.Limit,
				"total": total,
				"pages": pages,
			},
		},
	})
}

type createContentRequest struct {
	Key         string          `json:"key" binding:"required"`
	Title       string          `json:"title" binding:"required"`
	Content     string          `json:"content" binding:"required"`
	Type        string          `json:"type" binding:"required"`
	Order       int             `json:"order"`
	IsPublished *bool           `json:"is_published"`
	Metadata    json.RawMessage `json:"metadata"`
}

// CreateContent godoc
// @Summary      Create a content block
// @Tags         Content
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        request body createContentRequest true "Content details"
// @Success      200 {object} util.APIResponse{data=model.Content} "Content created"
// @Failure      400 {object} util.APIResponse "Invalid payload"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /content [post]
func CreateContent(c *gin.Context) {
	var req createContentRequest
	if !bindJSONOrRespond(c, &req, "Invalid request body") {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	published := true
	if req.IsPublished != nil {
		published = *req.IsPublished
	}

	content := model.Content{
		Key:         req.Key,
		Title:       req.Title,
		Content:     req.Content,
		Type:        req.Type,
		Order:       req.Order,
		IsPublished: published,
	}
	if len(req.Metadata) > 0 {
		content.Metadata = datatypes.JSON(req.Metadata)
	}

	if err := db.Create(&content).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Terjadi kesalahan saat menambah konten",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Konten berhasil ditambahkan",
		Data: content,
	})
}

type updateContentRequest struct {
	Title       *string         `json:"title"`
	Content     *string         `json:"content"`
	Type        *string         `json:"type"`
	Order       *int            `json:"order"`
	IsPublished *bool           `json:"is_published"`
	Metadata    json.RawMessage `json:"metadata"`
}

// UpdateContent godoc
// @Summary      Update a content block
// @Tags         Content
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        id path int true "Content ID"
// @Param        request body updateContentRequest true "Fields to update"
// @Success      200 {object} util.APIResponse{data=model.Content} "Content updated"
// @Failure      404 {object} util.APIResponse "Content not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /content/{id} [patch]
func UpdateContent(c *gin.Context) {
	id := c.Param("id")

	var req updateContentRequest
	if !bindJSONOrRespond(c, &req, "Invalid request body") {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var content model.Content
	if err := db.First(&content, "id = ?", id).Error; err != nil {
		util.CallErrorNotFound(c, util.APIErrorParams{
			Msg: "Konten tidak ditemukan",
			Err: err,
		})
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.Order != nil {
		updates["display_order"] = *req.Order
	}
	if req.IsPublished != nil {
		updates["is_published"] = *req.IsPublished
	}
	if len(req.Metadata) > 0 {
		updates["metadata"] = datatypes.JSON(req.Metadata)
	}

	if len(updates) > 0 {
		if err := db.Model(&content).Updates(updates).Error; err != nil {
			util.CallServerError(c, util.APIErrorParams{
				Msg: "Terjadi kesalahan saat memperbarui konten",
				Err: err,
			})
			return
		}
	}

	if err := db.First(&content, "id = ?", id).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to reload content",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Konten berhasil diperbarui",
		Data: content,
	})
}

// DeleteContent godoc
// @Summary      Delete a content block
// @Tags         Content
// @Produce      json
// @Security     SessionToken
// @Param        id path int true "Content ID"
// @Success      200 {object} util.APIResponse "Content deleted"
// @Failure      404 {object} util.APIResponse "Content not found"
// @Router       /content/{id} [delete]
func DeleteContent(c *gin.Context) {
	id := c.Param("id")

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var content model.Content
	if err := db.First(&content, "id = ?", id).Error; err != nil {
		util.CallErrorNotFound(c, util.APIErrorParams{
			Msg: "Konten tidak ditemukan",
			Err: err,
		})
		return
	}

	if err := db.Delete(&content).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Terjadi kesalahan saat menghapus konten",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Konten berhasil dihapus",
	})
}
