package cronjob

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultSchedule runs nightly at 12:00 AM. Specs include a seconds field.
const DefaultSchedule = "0 0 0 * * *"

// Purger is satisfied by *service.ShiftService.
type Purger interface {
	PurgeStaleDrafts(ctx context.Context) (int64, error)
}

type Scheduler struct {
	cron    *cron.Cron
	purger  Purger
	spec    string
	timeout time.Duration
	logger  *zap.Logger
}

func NewScheduler(purger Purger, spec string, logger *zap.Logger) *Scheduler {
	if spec == "" {
		spec = DefaultSchedule
	}
	return &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		purger:  purger,
		spec:    spec,
		timeout: time.Minute,
		logger:  logger,
	}
}

// Start registers the nightly jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.runNightlyJobs); err != nil {
		return fmt.Errorf("failed to create cron job: %w", err)
	}

	s.logger.Info("cron scheduler started", zap.String("schedule", s.spec))
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runNightlyJobs() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	n, err := s.purger.PurgeStaleDrafts(ctx)
	if err != nil {
		s.logger.Error("draft purge failed", zap.Error(err))
		return
	}
	s.logger.Info("draft purge completed",
		zap.Int64("deleted", n),
		zap.Duration("took", time.Since(start)))
}
