package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"zelux-backend/config"
	"zelux-backend/internal/handler"
	"zelux-backend/internal/middleware"
	"zelux-backend/internal/redis"
	"zelux-backend/internal/services"
	"zelux-backend/internal/websocket"
	"zelux-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     *config.Config
	logger     *logger.Logger
	onShutdown []func(ctx context.Context)
}

var (
	ReleaseMode = "release"
	DebugMode   = "debug"
	TestMode    = "test"
)

type Handlers struct {
	Auth    *handler.AuthHandler
	Contact *handler.ContactHandler
	Health  *handler.HealthHandler
	Stream  *websocket.Handler
}

func New(cfg *config.Config, l *logger.Logger) *Server {
	if cfg.AppMode == ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.AppMode == TestMode {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%s", cfg.AppPort),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		engine: engine,
		config: cfg,
		logger: l,
	}
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// OnShutdown registers fn to run after the HTTP server has stopped accepting requests.
func (s *Server) OnShutdown(fn func(ctx context.Context)) {
	s.onShutdown = append(s.onShutdown, fn)
}

// SetupRoutes wires the public API. limiter may be nil to disable rate limiting.
func (s *Server) SetupRoutes(handlers *Handlers, guard *services.AccessGuard, limiter *redis.RateLimiter) {
	s.engine.Use(middleware.RequestIDMiddleware())
	s.engine.Use(middleware.LoggingMiddleware(s.logger))
	s.engine.Use(middleware.ErrorHandler(s.logger))

	authLimit := middleware.RateLimitMiddleware(limiter, redis.ScopeAuth, s.logger)
	contactLimit := middleware.RateLimitMiddleware(limiter, redis.ScopeContact, s.logger)

	s.engine.GET("/", handlers.Health.Home)
	s.engine.GET("/health", handlers.Health.Health)

	s.engine.POST("/register", authLimit, handlers.Auth.Register)
	s.engine.POST("/login", authLimit, handlers.Auth.Login)

	s.engine.POST("/send-contact", contactLimit, middleware.OptionalAuth(guard), handlers.Contact.SendContact)

	admin := s.engine.Group("/admin")
	{
		admin.GET("/messages", middleware.RequireAdmin(guard), handlers.Contact.ListMessages)
		if handlers.Stream != nil {
			admin.GET("/messages/stream", handlers.Stream.Stream)
		}
	}
}

func (s *Server) Start() error {
	errCh := make(chan error, 1)
	go func() {
		if s.logger != nil {
			s.logger.Infof("Starting the server on port %s...", s.config.AppPort)
		}
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if s.logger != nil {
			s.logger.Errorf("Error in starting the server: %s", err)
		}
		return err
	case <-quit:
	}

	if s.logger != nil {
		s.logger.Infof("Quitting signal received.. Shutting down")
	}
	return s.Shutdown(context.Background())
}

// Shutdown stops the HTTP server, then runs the shutdown hooks, all within 10s.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err := s.httpServer.Shutdown(ctx)
	if err != nil && s.logger != nil {
		s.logger.Errorf("Error in the graceful shutdown of the server: %s", err)
	}

	for _, fn := range s.onShutdown {
		fn(ctx)
	}

	if err == nil && s.logger != nil {
		s.logger.Infof("Server stopped gracefully")
	}
	return err
}
