package catalog

import (
	"errors"
	"net/http"

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

// ListServices returns every service currently open for booking.
// @Summary		List available services
// @Tags		Catalog
// @Produce		json
// @Success		200	{array}	HostelService
// @Router		/services [get]
func (h *Handler) ListServices(c *gin.Context) {
	services, err := h.service.ListAvailable(c.Request.Context())
	if err != nil {
		h.log.Error("list services failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return
	}
	response.Success(c, http.StatusOK, services)
}

func (h *Handler) GetServiceByName(c *gin.Context) {
	svc, err := h.service.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, ErrServiceNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Service not found")
			return
		}
		h.log.Error("get service by name failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return
	}
	response.Success(c, http.StatusOK, svc)
}
