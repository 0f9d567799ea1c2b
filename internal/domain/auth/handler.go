package auth

import (
	"errors"
	"net/http"

	"hostelflow/internal/middleware"
	"hostelflow/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
	log     *zap.Logger
}

func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// Register creates a resident account.
// @Summary		Register
// @Tags		Auth
// @Accept		json
// @Produce		json
// @Param		body	body	RegisterRequest	true	"payload"
// @Success		201	{object}	AuthResult
// @Router		/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Email already registered",
				map[string]string{"email": "unique"})
			return
		}
		h.internal(c, "register failed", err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"user":   toProfile(result.User),
		"tokens": result.Tokens,
	})
}

// Login
// @Summary		Login
// @Tags		Auth
// @Accept		json
// @Produce		json
// @Param		body	body	LoginRequest	true	"payload"
// @Success		200	{object}	AuthResult
// @Router		/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
			return
		}
		h.internal(c, "login failed", err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":   toProfile(result.User),
		"tokens": result.Tokens,
	})
}

func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, ErrInvalidRefreshToken) {
			response.Error(c, http.StatusUnauthorized, "INVALID_REFRESH_TOKEN", "Refresh token is missing or invalid")
			return
		}
		h.internal(c, "refresh failed", err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tokens": result.Tokens})
}

func (h *Handler) GetProfile(c *gin.Context) {
	user, err := h.service.GetCurrentUser(c.Request.Context(), c.GetInt64(middleware.ContextUserID))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		h.internal(c, "get profile failed", err)
		return
	}

	response.Success(c, http.StatusOK, toProfile(user))
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), c.GetInt64(middleware.ContextUserID), req)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		h.internal(c, "update profile failed", err)
		return
	}

	response.Success(c, http.StatusOK, toProfile(user))
}

// ListUsers is the admin user listing.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		h.internal(c, "list users failed", err)
		return
	}

	out := make([]ProfileResponse, 0, len(users))
	for i := range users {
		out = append(out, toProfile(&users[i]))
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) internal(c *gin.Context, msg string, err error) {
	h.log.Error(msg, zap.Error(err))
	response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
}
