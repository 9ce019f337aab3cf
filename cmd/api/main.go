package main

// @title QuadraGo Discovery API
// @version 1.0.0
// @description Поиск спортивных центров: фильтры по виду спорта, дате и слоту, цене, расстоянию и удобствам.
// @description Состояние фильтров сериализуется в query string; долгоживущие сессии держат движок между запросами.

// @contact.name API Support
// @contact.email support@quadrago.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/quadrago-discovery/docs"
	"github.com/quadrago-discovery/internal/config"
	httpDelivery "github.com/quadrago-discovery/internal/delivery/http"
	"github.com/quadrago-discovery/internal/delivery/http/handler"
	"github.com/quadrago-discovery/internal/discovery"
	"github.com/quadrago-discovery/internal/domain/repository"
	"github.com/quadrago-discovery/internal/infrastructure/mapbox"
	"github.com/quadrago-discovery/internal/metrics"
	"github.com/quadrago-discovery/internal/pkg/logger"
	"github.com/quadrago-discovery/internal/repository/cache"
	"github.com/quadrago-discovery/internal/repository/memory"
	"github.com/quadrago-discovery/internal/repository/postgres"
	"github.com/quadrago-discovery/internal/session"
	"github.com/quadrago-discovery/internal/usecase"
)

var (
	version  = "dev"
	revision = ""
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting QuadraGo Discovery API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("catalog_provider", cfg.Catalog.Provider),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
	)

	// 3. Metrics
	discoveryMetrics := metrics.NewDiscovery()
	var metricsHandler nethttp.Handler
	if cfg.Metrics.Enabled {
		provider := metrics.Init(metrics.Config{
			Enabled: true,
			Build:   metrics.BuildInfo{Version: version, Revision: revision},
		})
		provider.Register(discoveryMetrics.Collectors()...)
		metricsHandler = provider.Handler()
	}

	// 4. Catalog and availability providers
	var (
		catalogRepo      repository.CatalogRepository
		availabilityRepo repository.AvailabilityRepository
		healthChecks     = make(map[string]httpDelivery.HealthCheck)
	)

	switch cfg.Catalog.Provider {
	case config.CatalogProviderPostgres:
		db, err := postgres.New(&cfg.Database, log)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Failed to close PostgreSQL connection", zap.Error(err))
			}
		}()

		catalogRepo = postgres.NewCatalogRepository(db)
		availabilityRepo = postgres.NewAvailabilityRepository(db)
		healthChecks["postgres"] = db.Health
		log.Info("Using PostgreSQL catalog")

	default:
		catalogRepo = memory.NewSeededCatalogRepository(log)
		availabilityRepo = memory.NewAvailabilityRepository(catalogRepo, cfg.Catalog.MockSeed, log)
		log.Info("Using in-memory mock catalog", zap.Int64("seed", cfg.Catalog.MockSeed))
	}

	// 5. Redis availability cache (optional)
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()

		healthChecks["redis"] = redisClient.Health
		availabilityRepo = cache.NewAvailabilityCache(
			availabilityRepo,
			cache.NewCacheRepository(redisClient),
			cfg.Cache.AvailabilityTTL,
			discoveryMetrics,
			log,
		)
		log.Info("Availability cache enabled", zap.Duration("ttl", cfg.Cache.AvailabilityTTL))
	}

	// 6. Geocoder (optional)
	var locator usecase.PlaceLocator
	if cfg.Mapbox.AccessToken != "" {
		geocoder, err := mapbox.NewGeocoder(&cfg.Mapbox, log)
		if err != nil {
			log.Fatal("Failed to initialize Mapbox geocoder", zap.Error(err))
		}
		locator = geocoder
	} else {
		log.Warn("MAPBOX_ACCESS_TOKEN is not set, location search by text is disabled")
	}

	// 7. Discovery engine wiring
	resolver := discovery.NewAvailabilityResolver(
		availabilityRepo,
		log,
		discovery.WithConcurrency(cfg.Discovery.ResolverConcurrency),
		discovery.WithQueryTimeout(cfg.Discovery.QueryTimeout),
		discovery.WithResolverMetrics(discoveryMetrics),
	)

	factory := usecase.NewEngineFactory(
		catalogRepo,
		resolver,
		log,
		discovery.WithGeolocationTimeout(cfg.Discovery.GeolocationTimeout),
		discovery.WithMapResolution(cfg.Discovery.MapResolution),
		discovery.WithEngineMetrics(discoveryMetrics),
	)

	sessionStore := session.NewStore(cfg.Session.TTL, discoveryMetrics, log)
	defer sessionStore.Close()

	// 8. Initialize Use Cases
	catalogUC := usecase.NewCatalogUseCase(catalogRepo, availabilityRepo, log)
	discoveryUC := usecase.NewDiscoveryUseCase(factory, log)
	sessionUC := usecase.NewSessionUseCase(sessionStore, factory, locator, cfg.Discovery.DefaultRadiusKm, log)

	log.Info("Use cases initialized")

	// 9. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		handler.NewCatalogHandler(catalogUC, log),
		handler.NewDiscoveryHandler(discoveryUC, log),
		handler.NewSessionHandler(sessionUC, log),
		metricsHandler,
	)
	for name, check := range healthChecks {
		server.RegisterHealthCheck(name, check)
	}

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped")
}
