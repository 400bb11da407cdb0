package main

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-health-agent/infrastructure/database/postgres"
	"github.com/vfg2006/meta-health-agent/infrastructure/database/redisdb"
	"github.com/vfg2006/meta-health-agent/infrastructure/integrator/meta"
	"github.com/vfg2006/meta-health-agent/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/meta-health-agent/infrastructure/repository"
	"github.com/vfg2006/meta-health-agent/internal/api"
	"github.com/vfg2006/meta-health-agent/internal/api/handler"
	"github.com/vfg2006/meta-health-agent/internal/config"
	"github.com/vfg2006/meta-health-agent/internal/metrics"
	"github.com/vfg2006/meta-health-agent/internal/scheduler"
	"github.com/vfg2006/meta-health-agent/internal/usecases/authenticating"
	"github.com/vfg2006/meta-health-agent/internal/usecases/diagnosing"
	"github.com/vfg2006/meta-health-agent/internal/usecases/insighting"
	"github.com/vfg2006/meta-health-agent/pkg/log"
)

const metricsNamespace = "meta_health_agent"

func main() {
	log.Setup("info")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)
	logrus.Infof("main: log level set to %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.NewMetrics(metricsNamespace)

	httpClient := metaclient.NewHTTPClient(cfg.Meta)
	tokenManager := metaclient.NewTokenManager(cfg.Meta, httpClient)
	go tokenManager.StartAutoRefresh(ctx)
	defer tokenManager.StopAutoRefresh()

	metaClient := metaclient.NewClient(cfg.Meta, tokenManager, httpClient)
	metaIntegrator := meta.New(metaClient)

	insightService := insighting.NewService(metaIntegrator, m).
		WithAttributionWindow(cfg.RecordCache.AttributionDays)

	var retentionJob handler.RetentionJob
	switch {
	case !cfg.RecordCache.Enabled:
		logrus.Info("main: record cache disabled")
	case cfg.RecordCache.Backend == config.RecordCacheBackendRedis:
		redisClient := redisconn(ctx, cfg.Redis)
		defer redisClient.Close()

		insightService.WithCache(repository.NewRedisRecordCacheRepository(redisClient, cfg.RecordCache.RetentionDays))
	default:
		pgConn := pgconn(ctx, cfg.Database)
		defer pgConn.Close()

		recordCacheRepo := repository.NewRecordCacheRepository(pgConn)
		insightService.WithCache(recordCacheRepo)

		retentionService := scheduler.NewRecordCacheRetentionService(recordCacheRepo, cfg.RecordCache)
		if err := retentionService.Start(ctx); err != nil {
			logrus.WithError(err).Error("main: failed to start record cache retention scheduler")
		} else {
			retentionJob = retentionService
		}
	}

	healthService := diagnosing.NewService(insightService, m)

	var authenticator authenticating.Authenticator
	if cfg.Auth.Enabled() {
		authService, err := authenticating.NewService(cfg.Auth)
		if err != nil {
			logrus.Fatal(err)
		}
		authenticator = authService
	} else {
		logrus.Warn("main: AUTH_SECRET not set, API authentication disabled")
	}

	server := api.New(cfg, healthService, m, authenticator, retentionJob)

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// pgconn cria a conexão com o banco de dados e aplica as migrações do cache
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	conn, err := postgres.NewConnection(connectCtx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("main: failed to connect to PostgreSQL")
	}

	if err := postgres.RunMigrations(connectCtx, conn); err != nil {
		logrus.WithError(err).Fatal("main: failed to apply migrations")
	}

	logrus.Info("main: PostgreSQL connection established")
	return conn
}

// redisconn cria o cliente do Redis usado como cache de insights
func redisconn(ctx context.Context, redisConfig config.Redis) *redis.Client {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := redisdb.NewClient(connectCtx, redisConfig)
	if err != nil {
		logrus.WithError(err).Fatal("main: failed to connect to Redis")
	}

	logrus.Info("main: Redis connection established")
	return client
}
