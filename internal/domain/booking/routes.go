package booking

import (
	"hostelflow/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	bookings := protected.Group("/bookings")
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("/my", h.ListMine)
		bookings.GET("/availability", h.Availability)
		bookings.PUT("/:id/cancel", h.Cancel)
		bookings.PUT("/:id/reschedule", h.Reschedule)
		bookings.POST("/:id/rate", h.Rate)
		bookings.DELETE("/:id/delete", h.Delete)
		bookings.POST("/:id/ask-if-completed/", h.AskIfCompleted)
	}

	protected.GET("/stats/dashboard", h.Dashboard)

	sp := protected.Group("/service-provider/bookings", middleware.ProviderOnly())
	{
		sp.GET("", h.ListAssigned)
		sp.PUT("/:id/status", h.UpdateStatus)
		sp.POST("/:id/notify-completion", h.NotifyCompletion)
	}

	protected.GET("/admin/bookings", middleware.AdminOnly(), h.ListAll)
	protected.POST("/notifications/booking/:id", middleware.AdminOnly(), h.SendBookingUpdate)
}
