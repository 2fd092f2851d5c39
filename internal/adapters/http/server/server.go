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

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	loggeradapter "tradesim/internal/adapters/logger"
)

// Server is the local JSON API serving the swap card.
type Server struct {
	echo   *echo.Echo
	config Config
	logger *loggeradapter.Logger
}

type Config struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// NewServer builds the echo instance. A nil gatherer leaves /metrics unregistered.
func NewServer(cfg Config, handler *HandlerAdapter, gatherer prometheus.Gatherer, logger *loggeradapter.Logger) *Server {
	if logger == nil {
		logger = loggeradapter.NewNopLogger()
	}

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Debug("Request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	registerRoutes(e, handler, gatherer)

	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	if addr == ":" {
		addr = "127.0.0.1:8080"
	}

	e.Server.Addr = addr
	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout
	e.Server.IdleTimeout = cfg.IdleTimeout

	return &Server{
		echo:   e,
		config: cfg,
		logger: logger,
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// StartWithGracefulShutdown serves until ctx is cancelled, SIGINT/SIGTERM arrives, or
// the listener fails.
func (s *Server) StartWithGracefulShutdown(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("Starting HTTP server", zap.String("address", s.echo.Server.Addr))
		if err := s.echo.Start(s.echo.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		s.logger.Info("Received signal, starting graceful shutdown", zap.String("signal", sig.String()))
	case <-ctx.Done():
		s.logger.Info("Context cancelled, starting graceful shutdown")
	}

	timeout := s.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.echo.Shutdown(ctx)
}
