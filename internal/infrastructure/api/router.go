package api

import (
	"net/http"
	"strings"

	"merchant-admin-layer/docs"
	"merchant-admin-layer/internal/application"
	"merchant-admin-layer/internal/infrastructure/metrics"
	securitymiddleware "merchant-admin-layer/internal/infrastructure/middleware"
	"merchant-admin-layer/internal/ports"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
)

// RouterConfig carries everything the HTTP surface is built from
type RouterConfig struct {
	Badges   *BadgeHandler
	Tasks    *TaskHandler
	Products *ProductHandler
	FAQs     *FAQHandler

	Auth       *application.AuthService
	OAuth      OAuthFlow
	Webhooks   WebhookVerifier
	Dispatcher EventDispatcher

	HealthCheckers map[string]ports.HealthChecker
	APIKey         string
	AppURL         string
	AllowedOrigins []string
}

// NewRouter wires middleware and routes
func NewRouter(cfg RouterConfig, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(securitymiddleware.AccessLogMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(securitymiddleware.SecurityHeadersMiddleware())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{securitymiddleware.HeaderRetryInvalidSession},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Public routes
	r.Get("/health", healthHandler(logger))
	r.Get("/ready", readyHandler(cfg.HealthCheckers, logger))
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(docs.SwaggerJSON)
	})

	// OAuth routes
	secureCookies := strings.HasPrefix(cfg.AppURL, "https://")
	r.Get("/auth", oauthInitHandler(cfg.OAuth, secureCookies, logger))
	r.Get("/auth/callback", oauthCallbackHandler(cfg.OAuth, cfg.Auth, cfg.APIKey, logger))

	// Webhooks are authenticated by HMAC, not by session token
	r.Post("/webhooks", webhookHandler(cfg.Webhooks, cfg.Dispatcher, logger))

	// Admin API, called from the embedded app with an App Bridge session token
	r.Route("/api", func(r chi.Router) {
		r.Use(securitymiddleware.SessionAuthMiddleware(cfg.Auth, logger))

		r.Get("/badges", cfg.Badges.HandleList)
		r.Post("/badges", cfg.Badges.HandleAction)

		r.Get("/tasks", cfg.Tasks.HandleList)
		r.Post("/tasks", cfg.Tasks.HandleAction)

		r.Get("/products", cfg.Products.HandleList)
		r.Post("/products", cfg.Products.HandleSetBadge)

		r.Get("/faqs", cfg.FAQs.HandleGet)
		r.Post("/faqs", cfg.FAQs.HandleMutation)
	})

	return r
}
