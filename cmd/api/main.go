package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"merchant-admin-layer/internal/application"
	"merchant-admin-layer/internal/application/webhook_handlers"
	"merchant-admin-layer/internal/config"
	"merchant-admin-layer/internal/domain"
	apiinfra "merchant-admin-layer/internal/infrastructure/api"
	"merchant-admin-layer/internal/infrastructure/pubsub"
	"merchant-admin-layer/internal/infrastructure/repository"
	shopifyinfra "merchant-admin-layer/internal/infrastructure/shopify"
	"merchant-admin-layer/internal/ports"

	goshopify "github.com/bold-commerce/go-shopify/v4"
	"github.com/rs/zerolog"
)

// shopifyRetries is how often go-shopify retries throttled or 5xx Admin API calls
const shopifyRetries = 3

func main() {
	// Bootstrap logger until the configured one is available
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger = config.NewLogger(cfg, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize repositories
	badgeRepo, taskRepo, storeChecker, closeStore := openStore(ctx, cfg, logger)
	defer closeStore()

	redisClient, err := repository.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()
	sessionRepo := repository.NewRedisSessionRepository(redisClient)

	// Initialize Shopify infrastructure
	app := shopifyinfra.NewApp(cfg.ShopifyAPIKey, cfg.ShopifyAPISecret, cfg.OAuthRedirectURL(), cfg.ShopifyScopes)
	clientPool, err := shopifyinfra.NewClientPool(app, cfg.ShopifyClientCacheSize,
		goshopify.WithVersion(cfg.ShopifyAPIVersion),
		goshopify.WithRetry(shopifyRetries),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create Shopify client pool")
	}
	gateway := shopifyinfra.NewGateway(clientPool, logger)
	oauth := shopifyinfra.NewOAuth(app, logger)
	verifier := shopifyinfra.NewSessionTokenVerifier(cfg.ShopifyAPIKey, cfg.ShopifyAPISecret)

	// Initialize application services
	badgeService := application.NewBadgeService(badgeRepo, logger)
	taskService := application.NewTaskService(taskRepo, logger)
	productService := application.NewProductService(gateway, badgeRepo, cfg.ProductsPageSize, logger)
	faqService := application.NewFAQService(gateway, logger)
	authService := application.NewAuthService(sessionRepo, verifier, logger)

	// Initialize webhook dispatcher and register handlers
	dispatcher := pubsub.NewWebhookDispatcher(logger)
	dispatcher.Subscribe(webhook_handlers.NewAppUninstalledHandler(logger, sessionRepo))
	dispatcher.Subscribe(webhook_handlers.NewShopRedactHandler(logger, taskRepo, sessionRepo))
	dispatcher.Subscribe(webhook_handlers.NewCustomerPrivacyHandler(logger))
	dispatcher.Subscribe(&clientEvictor{pool: clientPool, logger: logger})

	router := apiinfra.NewRouter(apiinfra.RouterConfig{
		Badges:     apiinfra.NewBadgeHandler(badgeService, logger),
		Tasks:      apiinfra.NewTaskHandler(taskService, logger),
		Products:   apiinfra.NewProductHandler(productService, logger),
		FAQs:       apiinfra.NewFAQHandler(faqService, logger),
		Auth:       authService,
		OAuth:      oauth,
		Webhooks:   oauth,
		Dispatcher: dispatcher,
		HealthCheckers: map[string]ports.HealthChecker{
			"database": storeChecker,
			"sessions": sessionRepo,
		},
		APIKey:         cfg.ShopifyAPIKey,
		AppURL:         cfg.AppURL,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	}, logger)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("Starting API server")
		logger.Info().Msg("Swagger documentation available at http://localhost:" + cfg.Port + "/swagger/index.html")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down API server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Graceful shutdown failed")
	}
}

// openStore connects the configured database and returns its repositories
func openStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (ports.BadgeRepository, ports.TaskRepository, ports.HealthChecker, func()) {
	switch cfg.DatabaseDriver {
	case config.DriverMongo:
		store, err := repository.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
		}
		closeStore := func() {
			if err := store.Close(context.Background()); err != nil {
				logger.Error().Err(err).Msg("Failed to disconnect from MongoDB")
			}
		}
		return repository.NewMongoBadgeRepository(store.Database()),
			repository.NewMongoTaskRepository(store.Database()),
			store,
			closeStore

	default:
		store, err := repository.OpenPostgres(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		if err := store.MigrateUp(ctx); err != nil {
			logger.Fatal().Err(err).Msg("Failed to apply migrations")
		}
		closeStore := func() {
			if err := store.Close(); err != nil {
				logger.Error().Err(err).Msg("Failed to close PostgreSQL")
			}
		}
		return repository.NewGormBadgeRepository(store.DB()),
			repository.NewGormTaskRepository(store.DB()),
			store,
			closeStore
	}
}

// clientEvictor drops the cached Admin API client of a shop that uninstalled the app
type clientEvictor struct {
	pool   *shopifyinfra.ClientPool
	logger zerolog.Logger
}

func (e *clientEvictor) CanHandle(topic string) bool {
	return topic == domain.TopicAppUninstalled
}

func (e *clientEvictor) Handle(ctx context.Context, event *domain.WebhookEvent) error {
	if event.Shop != "" {
		e.pool.Evict(event.Shop)
		e.logger.Debug().Str("shop", event.Shop).Msg("Evicted cached Shopify client")
	}
	return nil
}
