package stats

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homekeeper/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetStats handles GET /stats
func (h *Handler) GetStats(c *gin.Context) {
	report, err := h.service.ForUser(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		response.FromError(c, err, "Failed to compute stats")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"stats": report})
}

// ComputeStats handles POST /stats
func (h *Handler) ComputeStats(c *gin.Context) {
	var req ComputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	report, err := h.service.Compute(c.Request.Context(), c.GetString("user_id"), &req)
	if err != nil {
		response.FromError(c, err, "Failed to compute stats")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"stats": report})
}
