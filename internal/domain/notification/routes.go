package notification

import (
	"hostelflow/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the feed routes for residents and providers.
func RegisterRoutes(protected *gin.RouterGroup, handler *Handler) {
	protected.GET("/student/notifications", handler.ListNewestFirst)

	notifGroup := protected.Group("/notifications")
	{
		notifGroup.GET("/user", handler.List)
		notifGroup.GET("/unread-count", handler.UnreadCount)
		notifGroup.PUT("/:id/read", handler.MarkRead)
	}

	providerGroup := protected.Group("/service-provider/notifications", middleware.ProviderOnly())
	{
		providerGroup.GET("", handler.List)
		providerGroup.PUT("/:id/read", handler.MarkRead)
	}
}

// RegisterStreamRoute is mounted outside the header-auth group.
func RegisterStreamRoute(api *gin.RouterGroup, stream *StreamHandler) {
	api.GET("/notifications/stream", stream.Stream)
}
