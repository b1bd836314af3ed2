package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"merchant-admin-layer/internal/application"
	"merchant-admin-layer/internal/domain"
	"merchant-admin-layer/internal/infrastructure/pubsub"
	"merchant-admin-layer/internal/ports"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

type routerDeps struct {
	sessions *ports.MockSessionRepository
	verifier *ports.MockSessionTokenVerifier
	tasks    *ports.MockTaskRepository
	checkers map[string]ports.HealthChecker
}

func newTestRouter(deps routerDeps) http.Handler {
	logger := zerolog.Nop()
	gateway := new(ports.MockAdminGateway)
	badges := new(ports.MockBadgeRepository)
	auth := application.NewAuthService(deps.sessions, deps.verifier, logger)

	return NewRouter(RouterConfig{
		Badges:         NewBadgeHandler(application.NewBadgeService(badges, logger), logger),
		Tasks:          NewTaskHandler(application.NewTaskService(deps.tasks, logger), logger),
		Products:       NewProductHandler(application.NewProductService(gateway, badges, 5, logger), logger),
		FAQs:           NewFAQHandler(application.NewFAQService(gateway, logger), logger),
		Auth:           auth,
		OAuth:          &stubOAuthFlow{},
		Dispatcher:     pubsub.NewWebhookDispatcher(logger),
		HealthCheckers: deps.checkers,
		APIKey:         "test-key",
		AppURL:         "https://app.example.com",
		AllowedOrigins: []string{"https://admin.shopify.com"},
	}, logger)
}

func newRouterDeps() routerDeps {
	return routerDeps{
		sessions: new(ports.MockSessionRepository),
		verifier: new(ports.MockSessionTokenVerifier),
		tasks:    new(ports.MockTaskRepository),
		checkers: map[string]ports.HealthChecker{},
	}
}

func TestRouter_Health(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(newRouterDeps()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestRouter_Ready(t *testing.T) {
	t.Run("all stores reachable", func(t *testing.T) {
		deps := newRouterDeps()
		deps.checkers["database"] = pingFunc(func(ctx context.Context) error { return nil })
		deps.checkers["sessions"] = pingFunc(func(ctx context.Context) error { return nil })

		rec := httptest.NewRecorder()
		newTestRouter(deps).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok","checks":{"database":"ok","sessions":"ok"}}`, rec.Body.String())
	})

	t.Run("session store down", func(t *testing.T) {
		deps := newRouterDeps()
		deps.checkers["database"] = pingFunc(func(ctx context.Context) error { return nil })
		deps.checkers["sessions"] = pingFunc(func(ctx context.Context) error { return errors.New("dial tcp: refused") })

		rec := httptest.NewRecorder()
		newTestRouter(deps).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.JSONEq(t, `{"status":"unavailable","checks":{"database":"ok","sessions":"unavailable"}}`, rec.Body.String())
	})
}

func TestRouter_APIRequiresSession(t *testing.T) {
	deps := newRouterDeps()

	rec := httptest.NewRecorder()
	newTestRouter(deps).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-Shopify-Retry-Invalid-Session-Request"))
	deps.tasks.AssertNotCalled(t, "ListByShop", mock.Anything, mock.Anything)
}

func TestRouter_APIWithSessionToken(t *testing.T) {
	deps := newRouterDeps()
	deps.verifier.On("Verify", "signed-token").Return(testShop, nil)
	deps.sessions.On("Load", mock.Anything, domain.OfflineSessionID(testShop)).Return(testSession, nil)
	deps.tasks.On("ListByShop", mock.Anything, testShop).Return([]*domain.Task{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("Authorization", "Bearer signed-token")
	rec := httptest.NewRecorder()
	newTestRouter(deps).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
	deps.tasks.AssertExpectations(t)
}

func TestRouter_SwaggerDocument(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(newRouterDeps()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var doc struct {
		Swagger string                 `json:"swagger"`
		Paths   map[string]interface{} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "2.0", doc.Swagger)
	for _, path := range []string{"/api/badges", "/api/tasks", "/api/products", "/api/faqs", "/webhooks"} {
		assert.Contains(t, doc.Paths, path)
	}
}

func TestRouter_Metrics(t *testing.T) {
	router := newTestRouter(newRouterDeps())
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}
