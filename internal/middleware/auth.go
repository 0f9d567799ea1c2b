package middleware

import (
	"net/http"
	"strings"

	"hostelflow/internal/pkg/jwt"
	"hostelflow/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Context keys set by JWTAuth.
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
	ContextRoles  = "roles"
)

type tokenValidator interface {
	ValidateToken(tokenStr string) (*jwt.Claims, error)
}

// JWTAuth requires a valid access token in the Authorization header and stores
// the caller's id and role on the context.
func JWTAuth(tokens tokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Abort(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			response.Abort(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be: Bearer <token>")
			return
		}

		claims, err := tokens.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextRoles, claims.AllRoles())
		c.Next()
	}
}
