package maintenance

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

// LogMaintenance handles POST /maintenance
func (h *Handler) LogMaintenance(c *gin.Context) {
	var req LogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	rec, err := h.service.Log(c.Request.Context(), c.GetString("user_id"), &req)
	if err != nil {
		response.FromError(c, err, "Failed to log maintenance")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"record": rec})
}

// ListRecords handles GET /maintenance/:itemId
func (h *Handler) ListRecords(c *gin.Context) {
	records, err := h.service.ListForItem(c.Request.Context(), c.GetString("user_id"), c.Param("itemId"))
	if err != nil {
		response.FromError(c, err, "Failed to fetch maintenance records")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"records": records})
}
