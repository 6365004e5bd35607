package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pkgAuth "github.com/tvindima/crm-plus-sub000/pkg/auth"
	"github.com/tvindima/crm-plus-sub000/pkg/config"
	"github.com/tvindima/crm-plus-sub000/pkg/enums"
)

func testRouterConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test"},
		JWT: config.JWTConfig{Secret: "test-secret", Issuer: "crmplus", ExpirationMinutes: 30},
	}
}

// Middleware gating is testable without live services; requests below never
// reach a handler.
func TestRouterRequiresAuth(t *testing.T) {
	router := NewRouter(testRouterConfig(), nil, nil, nil, nil, http.NotFoundHandler(), Services{})

	paths := []string{
		"/api/v1/leads",
		"/api/v1/properties",
		"/api/v1/visits",
		"/api/v1/agents",
		"/api/v1/analytics/funnel",
	}
	for _, path := range paths {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestRouterAdminOnlyRoutes(t *testing.T) {
	cfg := testRouterConfig()
	router := NewRouter(cfg, nil, nil, nil, nil, http.NotFoundHandler(), Services{})

	agentToken, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: 1,
		Role:   enums.UserRoleAgent,
	})
	require.NoError(t, err)

	adminRoutes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/assignment/fix-all"},
		{http.MethodPost, "/api/v1/agents/"},
		{http.MethodDelete, "/api/v1/agents/3"},
		{http.MethodPost, "/api/admin/v1/users"},
	}
	for _, route := range adminRoutes {
		req := httptest.NewRequest(route.method, route.path, nil)
		req.Header.Set("Authorization", "Bearer "+agentToken)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code, route.path)
	}
}

func TestRouterHealthLiveIsPublic(t *testing.T) {
	router := NewRouter(testRouterConfig(), nil, nil, nil, nil, http.NotFoundHandler(), Services{})

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterMetricsExposed(t *testing.T) {
	router := NewRouter(testRouterConfig(), nil, nil, nil, nil, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), Services{})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
