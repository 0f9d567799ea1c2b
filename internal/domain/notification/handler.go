package notification

import (
	"errors"
	"net/http"
	"strconv"

	"hostelflow/internal/middleware"
	"hostelflow/internal/pkg/response"

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

// ListNewestFirst is the resident feed, most recent first.
func (h *Handler) ListNewestFirst(c *gin.Context) {
	h.list(c, Filter{NewestFirst: true, UnreadOnly: c.Query("unread") == "true"})
}

// List returns the caller's feed in creation order unless ?order=newest.
func (h *Handler) List(c *gin.Context) {
	h.list(c, Filter{
		NewestFirst: c.Query("order") == "newest",
		UnreadOnly:  c.Query("unread") == "true",
	})
}

func (h *Handler) list(c *gin.Context, f Filter) {
	items, err := h.service.List(c.Request.Context(), c.GetInt64(middleware.ContextUserID), f)
	if err != nil {
		h.log.Error("list notifications failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return
	}
	if items == nil {
		items = []Notification{}
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) UnreadCount(c *gin.Context) {
	n, err := h.service.UnreadCount(c.Request.Context(), c.GetInt64(middleware.ContextUserID))
	if err != nil {
		h.log.Error("unread count failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"unread": n})
}

func (h *Handler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid notification ID")
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), id, c.GetInt64(middleware.ContextUserID)); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Notification not found")
			return
		}
		h.log.Error("mark read failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": "marked as read"})
}
