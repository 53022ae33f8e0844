package notification

import "github.com/gin-gonic/gin"

// RegisterRoutes registers notification and preference routes
func RegisterRoutes(protected *gin.RouterGroup, handler *Handler, prefsHandler *PreferencesHandler) {
	protected.GET("/notifications", handler.GetNotifications)

	prefs := protected.Group("/preferences")
	{
		prefs.GET("", prefsHandler.GetPreferences)
		prefs.PUT("", prefsHandler.UpdatePreferences)
	}
}
