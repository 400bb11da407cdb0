package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/meta-health-agent/pkg/apiErrors"
	"github.com/vfg2006/meta-health-agent/pkg/log"
	"github.com/vfg2006/meta-health-agent/pkg/middleware"
)

const CronJobTypeRetention = "record-cache-retention"

// RetentionJob é a rotina de limpeza do cache que pode ser acionada manualmente
type RetentionJob interface {
	Run(ctx context.Context)
	Status() (time.Time, int64)
}

// RunCronJob executa manualmente uma rotina em background
func RunCronJob(job RetentionJob) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !middleware.IsOperator(r.Context()) {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "only operator tokens can run cron jobs", nil)
			return
		}

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType != CronJobTypeRetention {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid cron job type, accepted: "+CronJobTypeRetention, nil)
			return
		}

		log.ForContext(r.Context()).WithField("type", cronType).Info("cron: manual run requested")
		go job.Run(context.WithoutCancel(r.Context()))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": "cron job started",
			"type":    cronType,
		})
	})
}

// GetCronStatus retorna o resultado da última execução
func GetCronStatus(job RetentionJob) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !middleware.IsOperator(r.Context()) {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "only operator tokens can read cron status", nil)
			return
		}

		lastRunAt, deleted := job.Status()

		var lastRun *string
		if !lastRunAt.IsZero() {
			formatted := lastRunAt.Format(time.RFC3339)
			lastRun = &formatted
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			CronJobTypeRetention: map[string]any{
				"last_run_at":  lastRun,
				"last_deleted": deleted,
			},
		})
	})
}
