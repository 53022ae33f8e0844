package notification

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homekeeper/internal/pkg/response"
)

// PreferencesHandler handles the preferences endpoints.
type PreferencesHandler struct {
	service *Service
}

func NewPreferencesHandler(service *Service) *PreferencesHandler {
	return &PreferencesHandler{service: service}
}

// GetPreferences handles GET /preferences
func (h *PreferencesHandler) GetPreferences(c *gin.Context) {
	prefs, err := h.service.GetPreferences(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		response.FromError(c, err, "Failed to fetch preferences")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"preferences": prefs})
}

// UpdatePreferences handles PUT /preferences
func (h *PreferencesHandler) UpdatePreferences(c *gin.Context) {
	var req UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	prefs, err := h.service.UpdatePreferences(c.Request.Context(), c.GetString("user_id"), &req)
	if err != nil {
		response.FromError(c, err, "Failed to update preferences")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"preferences": prefs})
}
