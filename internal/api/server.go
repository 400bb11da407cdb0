package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-health-agent/internal/api/handler"
	"github.com/vfg2006/meta-health-agent/internal/api/handler/router"
	"github.com/vfg2006/meta-health-agent/internal/config"
	"github.com/vfg2006/meta-health-agent/internal/metrics"
	"github.com/vfg2006/meta-health-agent/internal/usecases/authenticating"
	"github.com/vfg2006/meta-health-agent/internal/usecases/diagnosing"
	"github.com/vfg2006/meta-health-agent/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
}

// New monta as rotas e a cadeia de middlewares.
// authenticator e retentionJob são opcionais; nil desliga a autenticação e as rotas de cron.
func New(
	cfg *config.Config,
	healthChecker diagnosing.HealthChecker,
	m *metrics.Metrics,
	authenticator authenticating.Authenticator,
	retentionJob handler.RetentionJob,
) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           NewHandler(cfg, healthChecker, m, authenticator, retentionJob),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}
}

// NewHandler retorna o handler HTTP completo da API
func NewHandler(
	cfg *config.Config,
	healthChecker diagnosing.HealthChecker,
	m *metrics.Metrics,
	authenticator authenticating.Authenticator,
	retentionJob handler.RetentionJob,
) http.Handler {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Metrics(m.Handler())...),
		router.WithRoutes(handler.HealthChecks(healthChecker)...),
		router.WithRoutes(handler.CronJobs(retentionJob)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(cfg.Server.CorsAllowedOrigins),
		middleware.AuthMiddleware(authenticator),
	}

	return alice.New(middlewares...).Then(rt)
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithField("address", s.httpServer.Addr).Info("api: server starting")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("api: server stopped unexpectedly")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case <-done:
		logrus.Info("api: interrupt signal received")
	case <-ctx.Done():
		logrus.Info("api: application context cancelled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithField("timeout", shutdownTimeout.String()).Info("api: starting graceful shutdown")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("api: error during shutdown")
		return err
	}

	logrus.Info("api: server stopped")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
