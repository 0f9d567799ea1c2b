package notification

import (
	"net/http"

	"hostelflow/internal/pkg/jwt"
	"hostelflow/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type tokenValidator interface {
	ValidateToken(tokenStr string) (*jwt.Claims, error)
}

// StreamHandler upgrades authenticated requests to a notification stream.
// Browsers cannot set headers on websocket requests, so the access token
// travels in ?token=.
type StreamHandler struct {
	hub      *Hub
	tokens   tokenValidator
	upgrader websocket.Upgrader
	log      *zap.Logger
}

// NewStreamHandler only accepts upgrades from allowedOrigins; requests with
// no Origin header (non-browser clients) are let through.
func NewStreamHandler(hub *Hub, tokens tokenValidator, allowedOrigins []string, log *zap.Logger) *StreamHandler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}

	return &StreamHandler{
		hub:    hub,
		tokens: tokens,
		log:    log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				_, ok := allowed[origin]
				return ok
			},
		},
	}
}

func (h *StreamHandler) Stream(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "AUTH_TOKEN_MISSING", "Token is required. Use ?token=<access token>")
		return
	}

	claims, err := h.tokens.ValidateToken(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	h.log.Debug("notification stream opened", zap.Int64("user_id", claims.UserID))
	h.hub.ServeWS(conn, claims.UserID)
	h.log.Debug("notification stream closed", zap.Int64("user_id", claims.UserID))
}
