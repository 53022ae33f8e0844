package webhook

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"homekeeper/internal/pkg/logger"
	"homekeeper/internal/pkg/response"
)

type Handler struct {
	service *Service
	inbound *Inbound
	relay   *Relay
	hub     *Hub
}

func NewHandler(service *Service, inbound *Inbound, relay *Relay, hub *Hub) *Handler {
	return &Handler{service: service, inbound: inbound, relay: relay, hub: hub}
}

// GetConfig handles GET /webhooks
func (h *Handler) GetConfig(c *gin.Context) {
	cfg, err := h.service.GetConfig(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		response.FromError(c, err, "Failed to fetch webhook config")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"webhooks": cfg})
}

// UpdateConfig handles PUT /webhooks
func (h *Handler) UpdateConfig(c *gin.Context) {
	var req UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	cfg, err := h.service.UpdateConfig(c.Request.Context(), c.GetString("user_id"), &req)
	if err != nil {
		response.FromError(c, err, "Failed to update webhook config")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"webhooks": cfg})
}

// NewItem handles POST /api/webhook/new-item
func (h *Handler) NewItem(c *gin.Context) {
	var p itemPayload
	if !decodeInbound(c, &p) {
		return
	}
	if err := h.inbound.NewItem(c.Request.Context(), &p); err != nil {
		response.FromError(c, err, "Webhook processing failed")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Item webhook received. Reminders will be scheduled by the automation platform.",
	})
}

// MaintenanceReminder handles POST /api/webhook/maintenance-reminder
func (h *Handler) MaintenanceReminder(c *gin.Context) {
	var p deliveryPayload
	if !decodeInbound(c, &p) {
		return
	}
	if err := h.inbound.MaintenanceReminder(c.Request.Context(), &p); err != nil {
		response.FromError(c, err, "Webhook processing failed")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Maintenance reminders processed"})
}

// WarrantyAlert handles POST /api/webhook/warranty-alert
func (h *Handler) WarrantyAlert(c *gin.Context) {
	var p deliveryPayload
	if !decodeInbound(c, &p) {
		return
	}
	if err := h.inbound.WarrantyAlert(c.Request.Context(), &p); err != nil {
		response.FromError(c, err, "Webhook processing failed")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Warranty alerts processed"})
}

// FindReplacement handles POST /api/webhook/find-replacement
func (h *Handler) FindReplacement(c *gin.Context) {
	var p itemPayload
	if !decodeInbound(c, &p) {
		return
	}
	offers, err := h.inbound.FindReplacement(c.Request.Context(), &p)
	if err != nil {
		response.FromError(c, err, "Webhook processing failed")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"replacements": offers})
}

// AnnualReport handles POST /api/webhook/annual-report
func (h *Handler) AnnualReport(c *gin.Context) {
	var p reportPayload
	if !decodeInbound(c, &p) {
		return
	}
	report, err := h.inbound.AnnualReport(c.Request.Context(), &p)
	if err != nil {
		response.FromError(c, err, "Webhook processing failed")
		return
	}

	body := gin.H{"message": "Annual insurance report generated"}
	if report != nil {
		body["report"] = report
	}
	response.Success(c, http.StatusOK, body)
}

// ListLogs handles GET /webhook-logs
func (h *Handler) ListLogs(c *gin.Context) {
	logs, err := h.relay.Recent(c.Request.Context())
	if err != nil {
		response.FromError(c, err, "Failed to fetch logs")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"logs": logs})
}

// StreamLogs handles GET /webhook-logs/stream
func (h *Handler) StreamLogs(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn(c.Request.Context(), "WebSocket upgrade failed", "error", err)
		return
	}
	h.hub.ServeWS(conn)
}

// decodeInbound reads a lenient JSON body; an empty body leaves dst zero.
func decodeInbound(c *gin.Context, dst any) bool {
	raw, err := c.GetRawData()
	if err != nil {
		response.FromError(c, ErrMalformedPayload, "Webhook processing failed")
		return false
	}
	if len(raw) == 0 {
		return true
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		response.FromError(c, ErrMalformedPayload, "Webhook processing failed")
		return false
	}
	return true
}
