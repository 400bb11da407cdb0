package handler

import (
	"net/http"

	"github.com/vfg2006/meta-health-agent/internal/api/handler/router"
	"github.com/vfg2006/meta-health-agent/internal/usecases/diagnosing"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Metrics(metricsHandler http.Handler) []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: metricsHandler,
		},
	}
}

func HealthChecks(service diagnosing.HealthChecker) []router.Route {
	return []router.Route{
		{
			Path:    "/meta/daily_health_check",
			Method:  http.MethodPost,
			Handler: DailyHealthCheck(service),
		},
	}
}

// CronJobs retorna as rotas de operação das rotinas; sem rotina configurada não há rotas
func CronJobs(job RetentionJob) []router.Route {
	if job == nil {
		return nil
	}

	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(job),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(job),
		},
	}
}
