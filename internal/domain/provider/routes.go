package provider

import (
	"hostelflow/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *Handler) RegisterAdminRoutes(protected *gin.RouterGroup) {
	admin := protected.Group("/admin/service-providers", middleware.AdminOnly())
	{
		admin.GET("", h.List)
		admin.POST("/create", h.Create)
		admin.PUT("/:id", h.Update)
		admin.DELETE("/:id/delete/", h.Delete)
	}
}

func (h *Handler) RegisterProviderRoutes(protected *gin.RouterGroup) {
	protected.GET("/service-provider/profile", middleware.ProviderOnly(), h.Profile)
}
