package notification

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

// GetNotifications handles GET /notifications
func (h *Handler) GetNotifications(c *gin.Context) {
	list, err := h.service.List(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		response.FromError(c, err, "Failed to fetch notifications")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"notifications": list})
}
