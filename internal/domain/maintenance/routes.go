package maintenance

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	r.POST("/maintenance", handler.LogMaintenance)
	r.GET("/maintenance/:itemId", handler.ListRecords)
}
