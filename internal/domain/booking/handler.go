package booking

import (
	"errors"
	"net/http"
	"strconv"

	"hostelflow/internal/middleware"
	"hostelflow/internal/pkg/response"
	"hostelflow/internal/pkg/validator"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service *Service
	log     *zap.Logger
}

func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// CreateBooking
// @Summary		Book a service slot
// @Tags		Bookings
// @Accept		json
// @Produce		json
// @Param		body	body	CreateRequest	true	"payload"
// @Success		201	{object}	Booking
// @Failure		400	{object}	map[string]interface{}	"validation error or slot already taken"
// @Router		/bookings [post]
func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	b, err := h.service.Create(c.Request.Context(), userID(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, b)
}

func (h *Handler) ListMine(c *gin.Context) {
	list, err := h.service.ListMine(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

// Availability
// @Summary		Unavailable slots for a service on a day
// @Tags		Bookings
// @Produce		json
// @Param		service_id	query	int		true	"service id"
// @Param		date		query	string	true	"today, tomorrow or YYYY-MM-DD"
// @Router		/bookings/availability [get]
func (h *Handler) Availability(c *gin.Context) {
	serviceID, err := strconv.ParseInt(c.Query("service_id"), 10, 64)
	if err != nil || serviceID <= 0 {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "service_id is required",
			map[string]string{"service_id": "required"})
		return
	}

	slots, err := h.service.UnavailableSlots(c.Request.Context(), serviceID, c.Query("date"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"unavailable_slots": slots})
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	if _, err := h.service.Cancel(c.Request.Context(), id, userID(c)); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Booking cancelled"})
}

func (h *Handler) Reschedule(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	if _, err := h.service.Reschedule(c.Request.Context(), id, userID(c), req); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Booking rescheduled"})
}

func (h *Handler) Rate(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	if _, err := h.service.Rate(c.Request.Context(), id, userID(c), req); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Rating submitted"})
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id, userID(c)); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Booking deleted successfully."})
}

func (h *Handler) AskIfCompleted(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	n, err := h.service.AskIfCompleted(c.Request.Context(), id, userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"message":            "Notification sent to service provider(s)",
		"providers_notified": n,
	})
}

func (h *Handler) Dashboard(c *gin.Context) {
	stats, err := h.service.DashboardStats(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// ListAssigned is the provider's view of bookings for their services.
func (h *Handler) ListAssigned(c *gin.Context) {
	list, err := h.service.ListAssigned(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	if _, err := h.service.UpdateStatus(c.Request.Context(), userID(c), id, req.Status); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Status updated"})
}

func (h *Handler) NotifyCompletion(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	// body is optional
	var req CompletionRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.service.NotifyCompletion(c.Request.Context(), userID(c), id, req.Message); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Notification sent"})
}

func (h *Handler) ListAll(c *gin.Context) {
	list, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) SendBookingUpdate(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	if err := h.service.SendBookingUpdate(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Notification sent"})
}

func (h *Handler) fail(c *gin.Context, err error) {
	var fieldErrs validator.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", fieldErrs)
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrSlotConflict):
		response.Error(c, http.StatusBadRequest, "SLOT_CONFLICT", slotConflictMessage)
	case errors.Is(err, ErrInvalidDate):
		response.Error(c, http.StatusBadRequest, "INVALID_DATE", "Invalid date format")
	case errors.Is(err, ErrInvalidStatus):
		response.Error(c, http.StatusBadRequest, "INVALID_STATUS", "Status must be in_progress or completed")
	case errors.Is(err, ErrCancelled):
		response.Error(c, http.StatusBadRequest, "BOOKING_CANCELLED", "Booking has been cancelled")
	case errors.Is(err, ErrServiceNotFound):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown service",
			map[string]string{"service_id": "exists"})
	default:
		h.log.Error("booking request failed", zap.String("path", c.FullPath()), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}

func userID(c *gin.Context) int64 {
	return c.GetInt64(middleware.ContextUserID)
}

func bookingID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return 0, false
	}
	return id, true
}
