package item

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"homekeeper/internal/pkg/logger"
	"homekeeper/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CreateItem handles POST /items
func (h *Handler) CreateItem(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	it, err := h.service.Create(c.Request.Context(), c.GetString("user_id"), &req)
	if err != nil {
		response.FromError(c, err, "Failed to create item")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"item": it})
}

// ListItems handles GET /items
func (h *Handler) ListItems(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		response.FromError(c, err, "Failed to fetch items")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"items": items})
}

// UpdateItem handles PUT /items/:id
func (h *Handler) UpdateItem(c *gin.Context) {
	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	it, err := h.service.Update(c.Request.Context(), c.GetString("user_id"), c.Param("id"), &req)
	if err != nil {
		response.FromError(c, err, "Failed to update item")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"item": it})
}

// DeleteItem handles DELETE /items/:id
func (h *Handler) DeleteItem(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.GetString("user_id"), c.Param("id")); err != nil {
		response.FromError(c, err, "Failed to delete item")
		return
	}

	response.Success(c, http.StatusOK, nil)
}

// MarkReplacement handles POST /items/:id/replacement
func (h *Handler) MarkReplacement(c *gin.Context) {
	var req ReplacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Marked == nil {
		response.Error(c, http.StatusBadRequest, "marked is required")
		return
	}

	it, err := h.service.MarkForReplacement(c.Request.Context(), c.GetString("user_id"), c.Param("id"), *req.Marked)
	if err != nil {
		response.FromError(c, err, "Failed to update item")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"item": it})
}

// ExportCSV handles GET /items/export.csv
func (h *Handler) ExportCSV(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		response.FromError(c, err, "Failed to export items")
		return
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, items); err != nil {
		logger.Error(c.Request.Context(), "CSV export failed", "error", err)
		response.Error(c, http.StatusInternalServerError, "Failed to export items")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="homekeeper-inventory.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
