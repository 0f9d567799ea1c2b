package provider

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hostelflow/internal/middleware"
	"hostelflow/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func setupRouter(t *testing.T) (*gin.Engine, *jwt.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, _ := setupService(t)
	tokens := jwt.New("provider-handler-secret", time.Hour, 24*time.Hour)
	h := NewHandler(svc, zap.NewNop())

	r := gin.New()
	protected := r.Group("/api")
	protected.Use(middleware.JWTAuth(tokens))
	h.RegisterAdminRoutes(protected)
	h.RegisterProviderRoutes(protected)
	return r, tokens
}

func doJSON(r http.Handler, method, path string, body any, token string) (*httptest.ResponseRecorder, envelope) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	var env envelope
	_ = json.Unmarshal(rr.Body.Bytes(), &env)
	return rr, env
}

func mustToken(t *testing.T, tokens *jwt.Service, userID int64, role string) string {
	t.Helper()
	tok, err := tokens.GenerateToken(userID, role)
	require.NoError(t, err)
	return tok
}

func TestHandler_AdminLifecycle(t *testing.T) {
	r, tokens := setupRouter(t)
	admin := mustToken(t, tokens, 1, middleware.RoleAdmin)

	rr, env := doJSON(r, http.MethodPost, "/api/admin/service-providers/create", map[string]any{
		"name": "Ivy", "email": "ivy@hostel.test", "phone": "777", "services": []int64{3},
	}, admin)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created CreateResult
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.Len(t, created.CreatedServices, 1)
	assert.Equal(t, "Study Spaces", created.CreatedServices[0].Name)

	rr, env = doJSON(r, http.MethodPost, "/api/admin/service-providers/create", map[string]any{
		"name": "Ivy again", "email": "ivy@hostel.test",
	}, admin)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "unique", env.Error.Details["email"])

	rr, env = doJSON(r, http.MethodPost, "/api/admin/service-providers/create", map[string]any{
		"name": "No Email",
	}, admin)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	rr, env = doJSON(r, http.MethodGet, "/api/admin/service-providers", nil, admin)
	require.Equal(t, http.StatusOK, rr.Code)
	var list []ProviderView
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	require.Len(t, list[0].Services, 1)
	assert.Equal(t, "Study Spaces", list[0].Services[0].Name)

	path := fmt.Sprintf("/api/admin/service-providers/%d", created.Provider.ID)
	rr, env = doJSON(r, http.MethodPut, path, map[string]any{"specialization": "quiet rooms"}, admin)
	require.Equal(t, http.StatusOK, rr.Code)
	var updated ProviderView
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "quiet rooms", updated.Specialization)
	assert.Equal(t, "777", updated.Phone)

	rr, _ = doJSON(r, http.MethodPut, "/api/admin/service-providers/4242", map[string]any{"phone": "1"}, admin)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr, _ = doJSON(r, http.MethodDelete, path+"/delete/", nil, admin)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	rr, _ = doJSON(r, http.MethodDelete, path+"/delete/", nil, admin)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandler_RoleChecks(t *testing.T) {
	r, tokens := setupRouter(t)
	admin := mustToken(t, tokens, 1, middleware.RoleAdmin)
	student := mustToken(t, tokens, 50, middleware.RoleStudent)

	rr, _ := doJSON(r, http.MethodGet, "/api/admin/service-providers", nil, student)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr, env := doJSON(r, http.MethodPost, "/api/admin/service-providers/create", map[string]any{
		"name": "Jo", "email": "jo@hostel.test", "specialization": "cleaning",
	}, admin)
	require.Equal(t, http.StatusCreated, rr.Code)
	var created CreateResult
	require.NoError(t, json.Unmarshal(env.Data, &created))

	jo := mustToken(t, tokens, created.Provider.UserID, middleware.RoleProvider)
	rr, env = doJSON(r, http.MethodGet, "/api/service-provider/profile", nil, jo)
	require.Equal(t, http.StatusOK, rr.Code)
	var profile ProfileView
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, "jo@hostel.test", profile.User.Email)
	assert.Equal(t, "cleaning", profile.Specialization)

	rr, _ = doJSON(r, http.MethodGet, "/api/service-provider/profile", nil, student)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	orphan := mustToken(t, tokens, 777, middleware.RoleProvider)
	rr, env = doJSON(r, http.MethodGet, "/api/service-provider/profile", nil, orphan)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}
