package provider

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

// Create onboards a provider with the default password.
// @Summary		Create service provider
// @Tags		Admin
// @Accept		json
// @Produce		json
// @Param		body	body	CreateRequest	true	"payload"
// @Success		201	{object}	CreateResult
// @Router		/admin/service-providers/create [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

func (h *Handler) List(c *gin.Context) {
	providers, err := h.service.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, providers)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid provider ID")
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	view, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid provider ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Profile(c *gin.Context) {
	profile, err := h.service.Profile(c.Request.Context(), c.GetInt64(middleware.ContextUserID))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, profile)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrProviderNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Provider not found")
	case errors.Is(err, ErrProfileNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Service provider profile not found")
	case errors.Is(err, ErrEmailAlreadyExists):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Email already registered",
			map[string]string{"email": "unique"})
	case errors.Is(err, ErrUnknownService):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown service id",
			map[string]string{"service_ids": "exists"})
	default:
		h.log.Error("provider request failed", zap.String("path", c.FullPath()), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
