package middleware

import (
	"net/http"

	"hostelflow/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Roles carried in access tokens.
const (
	RoleStudent  = "student"
	RoleProvider = "provider"
	RoleAdmin    = "admin"
)

// RequireRole lets the request through when the caller holds any of roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		held := c.GetStringSlice(ContextRoles)
		if len(held) == 0 {
			if role := c.GetString(ContextRole); role != "" {
				held = []string{role}
			}
		}
		if len(held) == 0 {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			return
		}

		for _, want := range roles {
			for _, have := range held {
				if want == have {
					c.Next()
					return
				}
			}
		}

		response.Abort(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
	}
}

func AdminOnly() gin.HandlerFunc {
	return RequireRole(RoleAdmin)
}

func ProviderOnly() gin.HandlerFunc {
	return RequireRole(RoleProvider)
}
