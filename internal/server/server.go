// Package server exposes the simulator over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/text/language"
	"golang.org/x/time/rate"

	"github.com/spachava753/howmanytries/internal/executor"
	"github.com/spachava753/howmanytries/internal/i18n"
	"github.com/spachava753/howmanytries/internal/models"
)

// Server wires the simulator into a gin router.
type Server struct {
	cfg       models.ServiceConfig
	sim       *executor.Simulator
	version   string
	startedAt time.Time
	lang      language.Tag
	limiter   *rate.Limiter
	router    *gin.Engine
}

// New creates a server and registers all routes.
func New(cfg models.ServiceConfig, sim *executor.Simulator, version string) *Server {
	lang, _ := i18n.ParseTag(cfg.Server.DefaultLanguage)

	var limiter *rate.Limiter
	if cfg.Server.RateLimitPerSec > 0 {
		burst := cfg.Server.RateLimitBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.Server.RateLimitPerSec), burst)
	}

	s := &Server{
		cfg:       cfg,
		sim:       sim,
		version:   version,
		startedAt: time.Now(),
		lang:      lang,
		limiter:   limiter,
	}

	router := gin.New()
	router.Use(gin.CustomRecovery(s.recoverPanic))
	router.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	router.Use(requestIDMiddleware())
	router.Use(requestLogMiddleware())
	router.Use(corsMiddleware(cfg.Server.CORSOrigins, cfg.Server.CORSCredentials))
	router.NoRoute(s.HandleNotFound)

	RegisterRoutes(router, s)
	s.router = router

	return s
}

// Handler returns the http.Handler serving the API.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on the configured port until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening",
			"addr", srv.Addr,
			"environment", s.cfg.Environment,
			"version", s.version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("serving http: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	timeout := time.Duration(s.cfg.Server.ShutdownTimeoutS * float64(time.Second))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	slog.Info("shutting down server", "timeout", timeout)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	return nil
}

func (s *Server) recoverPanic(c *gin.Context, recovered any) {
	slog.Error("panic while handling request",
		"request_id", c.GetString(requestIDKey),
		"path", c.Request.URL.Path,
		"panic", recovered)
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Error: i18n.Translate(s.language(c), i18n.MsgInternal),
		Code:  models.ErrInternalError,
	})
}

func (s *Server) language(c *gin.Context) language.Tag {
	return i18n.ResolveTag(c.Request, s.lang)
}
