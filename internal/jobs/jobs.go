/**
 * @description
 * Scheduled job implementations: the subscription renewal sweep, coupon
 * expiry and banner activation window sync.
 */
package jobs

import (
	"context"
	"log/slog"
	"time"
)

// SubscriptionRenewer runs the renewal sweep over due subscriptions.
type SubscriptionRenewer interface {
	RenewDue(ctx context.Context, now time.Time) (int, error)
}

// MaintenanceRepository defines the bulk maintenance queries the jobs run
// directly against the store.
type MaintenanceRepository interface {
	DeactivateExpiredCoupons(ctx context.Context, now time.Time) (int64, error)
	SyncBannerWindows(ctx context.Context, now time.Time) (int64, error)
}

// Jobs contains the logic for all scheduled tasks.
type Jobs struct {
	subscriptions SubscriptionRenewer
	repo          MaintenanceRepository
	logger        *slog.Logger
}

// NewJobs creates a new Jobs runner.
func NewJobs(subscriptions SubscriptionRenewer, repo MaintenanceRepository, logger *slog.Logger) *Jobs {
	return &Jobs{
		subscriptions: subscriptions,
		repo:          repo,
		logger:        logger,
	}
}

// RenewSubscriptions advances due subscriptions into their next billing
// period and lapses the ones that no longer auto-renew.
func (j *Jobs) RenewSubscriptions() {
	j.logger.Info("starting subscription renewal job")
	ctx := context.Background()

	renewed, err := j.subscriptions.RenewDue(ctx, time.Now())
	if err != nil {
		j.logger.Error("subscription renewal job failed", "error", err)
		return
	}

	j.logger.Info("subscription renewal job finished", "renewed", renewed)
}

// ExpireCoupons deactivates coupons whose validity window has passed.
func (j *Jobs) ExpireCoupons() {
	j.logger.Info("starting coupon expiry job")
	ctx := context.Background()

	expired, err := j.repo.DeactivateExpiredCoupons(ctx, time.Now())
	if err != nil {
		j.logger.Error("coupon expiry job failed", "error", err)
		return
	}

	j.logger.Info("coupon expiry job finished", "expired", expired)
}

// SyncBanners flips banner visibility to match each activation window.
func (j *Jobs) SyncBanners() {
	j.logger.Info("starting banner window sync job")
	ctx := context.Background()

	changed, err := j.repo.SyncBannerWindows(ctx, time.Now())
	if err != nil {
		j.logger.Error("banner window sync job failed", "error", err)
		return
	}

	j.logger.Info("banner window sync job finished", "changed", changed)
}
