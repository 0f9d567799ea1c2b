package notification

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hostelflow/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStream_DeliversPublishedNotification(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tokens := jwt.New("stream-secret", time.Hour, time.Hour)
	hub := NewHub(zap.NewNop())
	r := gin.New()
	RegisterStreamRoute(r.Group("/api"), NewStreamHandler(hub, tokens, nil, zap.NewNop()))

	srv := httptest.NewServer(r)
	defer srv.Close()

	token, err := tokens.GenerateToken(7, "student")
	require.NoError(t, err)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/notifications/stream?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Connected(7) }, 2*time.Second, 10*time.Millisecond)

	hub.Publish(Notification{ID: 1, UserID: 8, Message: "not yours"})
	hub.Publish(Notification{ID: 2, UserID: 7, Message: "yours"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var ev Event
	require.NoError(t, json.Unmarshal(data, &ev))
	assert.Equal(t, EventNotification, ev.Type)
	assert.Equal(t, int64(2), ev.Notification.ID)
	assert.Equal(t, "yours", ev.Notification.Message)
}

func TestStream_RejectsMissingOrBadToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tokens := jwt.New("stream-secret", time.Hour, time.Hour)
	r := gin.New()
	RegisterStreamRoute(r.Group("/api"), NewStreamHandler(NewHub(zap.NewNop()), tokens, nil, zap.NewNop()))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/notifications/stream", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/notifications/stream?token=junk", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
