package item

import "github.com/gin-gonic/gin"

// RegisterRoutes registers item routes on an authenticated group.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	items := r.Group("/items")
	{
		items.POST("", handler.CreateItem)
		items.GET("", handler.ListItems)
		items.GET("/export.csv", handler.ExportCSV)
		items.PUT("/:id", handler.UpdateItem)
		items.DELETE("/:id", handler.DeleteItem)
		items.POST("/:id/replacement", handler.MarkReplacement)
	}
}
