package assistant

import (
	"context"
	"errors"
	"net/http"

	"hostelflow/internal/domain/catalog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ServiceLookup resolves catalog entries by display name.
type ServiceLookup interface {
	GetByName(ctx context.Context, name string) (*catalog.HostelService, error)
}

// Handler serves the chat widget. Replies are raw JSON objects, not the
// success envelope, because the widget reads the fields directly.
type Handler struct {
	extractor *Extractor
	services  ServiceLookup
	log       *zap.Logger
}

func NewHandler(extractor *Extractor, services ServiceLookup, log *zap.Logger) *Handler {
	return &Handler{extractor: extractor, services: services, log: log}
}

// ChatRequest accepts any previous_state; only a JSON object is carried
// into the prompt.
type ChatRequest struct {
	UserMessage   string `json:"user_message"`
	PreviousState any    `json:"previous_state"`
}

func (r ChatRequest) state() map[string]any {
	if m, ok := r.PreviousState.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// Chat extracts booking intent from one user turn.
// @Summary		Chat with the booking assistant
// @Tags		Assistant
// @Accept		json
// @Produce		json
// @Param		body	body	ChatRequest	true	"Message and previous state"
// @Router		/AI/chat/ [post]
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = ChatRequest{}
	}

	reply, err := h.extractor.Handle(c.Request.Context(), req.UserMessage, req.state())
	switch {
	case errors.Is(err, ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, gin.H{"response": "No user message received."})
	case err != nil:
		h.log.Error("chat extraction failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, reply)
	default:
		c.JSON(http.StatusOK, reply)
	}
}

func (h *Handler) ServiceByName(c *gin.Context) {
	svc, err := h.services.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
			return
		}
		h.log.Error("assistant service lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, svc)
}
