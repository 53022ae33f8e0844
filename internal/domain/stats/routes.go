package stats

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/stats", handler.GetStats)
	r.POST("/stats", handler.ComputeStats)
}
