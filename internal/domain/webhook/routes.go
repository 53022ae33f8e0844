package webhook

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the per-user config on protected and the
// automation callbacks plus log views on operator.
func RegisterRoutes(protected, operator *gin.RouterGroup, handler *Handler) {
	protected.GET("/webhooks", handler.GetConfig)
	protected.PUT("/webhooks", handler.UpdateConfig)

	hooks := operator.Group("/api/webhook")
	{
		hooks.POST("/"+EventNewItem, handler.NewItem)
		hooks.POST("/"+EventMaintenanceReminder, handler.MaintenanceReminder)
		hooks.POST("/"+EventWarrantyAlert, handler.WarrantyAlert)
		hooks.POST("/"+EventFindReplacement, handler.FindReplacement)
		hooks.POST("/"+EventAnnualReport, handler.AnnualReport)
	}

	operator.GET("/webhook-logs", handler.ListLogs)
	operator.GET("/webhook-logs/stream", handler.StreamLogs)
}
