package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-health-agent/infrastructure/repository"
	"github.com/vfg2006/meta-health-agent/internal/config"
)

const retentionTimeout = 5 * time.Minute

// RecordCacheRetentionService remove periodicamente os dias antigos do cache de linhas
type RecordCacheRetentionService struct {
	scheduler       *gocron.Scheduler
	config          config.RecordCache
	recordCacheRepo repository.RecordCacheRepository
	running         bool
	mutex           sync.Mutex
	lastRunAt       time.Time
	lastDeleted     int64
}

// NewRecordCacheRetentionService cria uma nova instância do serviço de retenção
func NewRecordCacheRetentionService(
	recordCacheRepo repository.RecordCacheRepository,
	cfg config.RecordCache,
) *RecordCacheRetentionService {
	logrus.WithFields(logrus.Fields{
		"cron_schedule":  cfg.RetentionCron,
		"retention_days": cfg.RetentionDays,
	}).Info("scheduler: record cache retention configuration loaded")

	return &RecordCacheRetentionService{
		scheduler:       gocron.NewScheduler(time.UTC),
		config:          cfg,
		recordCacheRepo: recordCacheRepo,
	}
}

// Start agenda a limpeza e para o agendador quando o contexto for cancelado
func (s *RecordCacheRetentionService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("scheduler: record cache disabled, retention job not scheduled")
		return nil
	}

	if s.config.RetentionDays <= 0 {
		return fmt.Errorf("scheduler: retention days must be positive, got %d", s.config.RetentionDays)
	}

	_, err := s.scheduler.Cron(s.config.RetentionCron).Do(func() {
		s.Run(ctx)
	})
	if err != nil {
		return fmt.Errorf("scheduler: scheduling record cache retention: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("scheduler: stopping record cache retention")
		s.scheduler.Stop()
	}()

	logrus.WithField("cron", s.config.RetentionCron).Info("scheduler: record cache retention started")

	return nil
}

// Run executa uma limpeza; execuções sobrepostas são ignoradas
func (s *RecordCacheRetentionService) Run(ctx context.Context) {
	s.mutex.Lock()
	if s.running {
		s.mutex.Unlock()
		logrus.Info("scheduler: record cache retention already running, skipping")
		return
	}
	s.running = true
	s.mutex.Unlock()

	defer func() {
		s.mutex.Lock()
		s.running = false
		s.mutex.Unlock()
	}()

	runCtx, cancel := context.WithTimeout(ctx, retentionTimeout)
	defer cancel()

	started := time.Now()
	deleted, err := s.recordCacheRepo.DeleteOlderThan(runCtx, s.config.RetentionDays)
	if err != nil {
		logrus.WithError(err).Error("scheduler: failed to delete expired cached records")
		return
	}

	s.mutex.Lock()
	s.lastRunAt = started
	s.lastDeleted = deleted
	s.mutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"deleted":     deleted,
		"days":        s.config.RetentionDays,
		"duration_ms": time.Since(started).Milliseconds(),
	}).Info("scheduler: record cache retention completed")
}

// Status retorna o horário da última limpeza concluída e quantos dias foram removidos
func (s *RecordCacheRetentionService) Status() (time.Time, int64) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.lastRunAt, s.lastDeleted
}
