package auth

import (
	"hostelflow/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.Refresh)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/auth/profile", h.GetProfile)
	protected.PUT("/auth/profile", h.UpdateProfile)

	protected.GET("/admin/users", middleware.AdminOnly(), h.ListUsers)
}
