/**
 * @description
 * Cron scheduler setup for the scheduled jobs.
 */
package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/viteezy/commerce-backend/internal/config"
)

// Scheduler manages the cron jobs.
type Scheduler struct {
	cron   *cron.Cron
	jobs   *Jobs
	logger *slog.Logger
	config config.Config
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(jobs *Jobs, logger *slog.Logger, cfg config.Config) *Scheduler {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	c := cron.New(cron.WithChain(cron.Recover(cronLogger)))

	return &Scheduler{
		cron:   c,
		jobs:   jobs,
		logger: logger,
		config: cfg,
	}
}

// Start registers the jobs and starts the cron scheduler.
func (s *Scheduler) Start() {
	if _, err := s.cron.AddFunc(s.config.RenewalJobSchedule, s.jobs.RenewSubscriptions); err != nil {
		s.logger.Error("failed to schedule subscription renewal job", "error", err)
	} else {
		s.logger.Info("scheduled subscription renewal job", "schedule", s.config.RenewalJobSchedule)
	}

	if _, err := s.cron.AddFunc(s.config.CouponExpiryJobSchedule, s.jobs.ExpireCoupons); err != nil {
		s.logger.Error("failed to schedule coupon expiry job", "error", err)
	} else {
		s.logger.Info("scheduled coupon expiry job", "schedule", s.config.CouponExpiryJobSchedule)
	}

	if _, err := s.cron.AddFunc(s.config.BannerWindowJobSchedule, s.jobs.SyncBanners); err != nil {
		s.logger.Error("failed to schedule banner window sync job", "error", err)
	} else {
		s.logger.Info("scheduled banner window sync job", "schedule", s.config.BannerWindowJobSchedule)
	}

	s.cron.Start()
}

// Stop gracefully stops the cron scheduler.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
