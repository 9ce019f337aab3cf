package http

import (
	"context"
	nethttp "net/http"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/quadrago-discovery/internal/config"
	"github.com/quadrago-discovery/internal/delivery/http/handler"
	"github.com/quadrago-discovery/internal/delivery/http/middleware"
)

// HealthCheck проверяет внешнюю зависимость (PostgreSQL, Redis)
type HealthCheck func(ctx context.Context) error

const healthCheckTimeout = 2 * time.Second

// Server - HTTP сервер на основе Fiber
type Server struct {
	app     *fiber.App
	config  *config.Config
	logger  *zap.Logger
	metrics nethttp.Handler

	checksMu sync.RWMutex
	checks   map[string]HealthCheck

	// Handlers
	catalogHandler   *handler.CatalogHandler
	discoveryHandler *handler.DiscoveryHandler
	sessionHandler   *handler.SessionHandler
}

// NewServer - создание нового HTTP сервера; metrics может быть nil (эндпоинт /metrics не регистрируется)
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	catalogHandler *handler.CatalogHandler,
	discoveryHandler *handler.DiscoveryHandler,
	sessionHandler *handler.SessionHandler,
	metrics nethttp.Handler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "QuadraGo Discovery",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:              app,
		config:           cfg,
		logger:           logger,
		metrics:          metrics,
		checks:           make(map[string]HealthCheck),
		catalogHandler:   catalogHandler,
		discoveryHandler: discoveryHandler,
		sessionHandler:   sessionHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.AllowedOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	if s.metrics != nil {
		s.app.Get("/metrics", adaptor.HTTPHandler(s.metrics))
	}

	api := s.app.Group("/api/v1")

	api.Get("/health", s.health)

	// Catalog
	api.Get("/sports", s.catalogHandler.GetSports)
	api.Get("/centers", s.discoveryHandler.SearchCenters)
	api.Get("/centers/:id", s.catalogHandler.GetCenter)
	api.Get("/centers/:id/availability", s.catalogHandler.GetAvailability)

	// Sessions
	sessions := api.Group("/sessions")
	sessions.Post("/", s.sessionHandler.Create)
	sessions.Get("/:id", s.sessionHandler.Get)
	sessions.Delete("/:id", s.sessionHandler.Delete)
	sessions.Patch("/:id/filters", s.sessionHandler.UpdateFilters)
	sessions.Delete("/:id/filters", s.sessionHandler.ClearFilters)
	sessions.Post("/:id/location", s.sessionHandler.SetLocation)
	sessions.Delete("/:id/notice", s.sessionHandler.DismissNotice)
	sessions.Post("/:id/reload", s.sessionHandler.Reload)
}

// RegisterHealthCheck добавляет зависимость в ответ /api/v1/health
func (s *Server) RegisterHealthCheck(name string, check HealthCheck) {
	s.checksMu.Lock()
	defer s.checksMu.Unlock()
	s.checks[name] = check
}

// health - 200 если все зависимости отвечают, иначе 503 со статусом каждой
func (s *Server) health(c *fiber.Ctx) error {
	s.checksMu.RLock()
	checks := make(map[string]HealthCheck, len(s.checks))
	for name, check := range s.checks {
		checks[name] = check
	}
	s.checksMu.RUnlock()

	ctx, cancel := context.WithTimeout(c.UserContext(), healthCheckTimeout)
	defer cancel()

	status := "healthy"
	components := make(map[string]string, len(checks))
	for name, check := range checks {
		if err := check(ctx); err != nil {
			s.logger.Warn("Health check failed", zap.String("component", name), zap.Error(err))
			components[name] = err.Error()
			status = "degraded"
			continue
		}
		components[name] = "ok"
	}

	if status != "healthy" {
		c.Status(fiber.StatusServiceUnavailable)
	}
	return c.JSON(fiber.Map{
		"status":     status,
		"components": components,
		"time":       time.Now(),
	})
}

// App - доступ к fiber.App (тесты)
func (s *Server) App() *fiber.App {
	return s.app
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		errCode := "INTERNAL_SERVER_ERROR"

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			if code == fiber.StatusNotFound {
				errCode = "NOT_FOUND"
			}
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err),
			)
		}

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    errCode,
				"message": err.Error(),
			},
		})
	}
}
