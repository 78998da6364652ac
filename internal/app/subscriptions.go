/**
 * @description
 * This file contains the business logic for subscriptions: creation with the
 * (product, cycle) discount rule applied, lifecycle changes, and the renewal
 * sweep run by the scheduler.
 */
package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/viteezy/commerce-backend/internal/apperr"
	"github.com/viteezy/commerce-backend/internal/domain"
	"github.com/viteezy/commerce-backend/internal/store"
	"github.com/viteezy/commerce-backend/pkg/rabbitmq"
)

// SubscriptionRepository defines the database operations the subscription
// service needs.
type SubscriptionRepository interface {
	CreateSubscription(ctx context.Context, s *domain.Subscription) (*domain.Subscription, error)
	UpdateSubscription(ctx context.Context, s *domain.Subscription) (*domain.Subscription, error)
	GetSubscriptionByID(ctx context.Context, id uuid.UUID) (*domain.Subscription, error)
	ListSubscriptionsByUser(ctx context.Context, userID uuid.UUID) ([]domain.Subscription, error)
	ListDueSubscriptions(ctx context.Context, now time.Time) ([]domain.Subscription, error)
	GetDiscountRule(ctx context.Context, productID uuid.UUID, cycle string) (*domain.DiscountRule, error)
	UpsertDiscountRule(ctx context.Context, rule *domain.DiscountRule) (*domain.DiscountRule, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
}

// SubscriptionService provides subscription business logic.
type SubscriptionService struct {
	repo      SubscriptionRepository
	publisher rabbitmq.Publisher
	logger    *slog.Logger
}

// NewSubscriptionService creates a new subscription service.
func NewSubscriptionService(repo SubscriptionRepository, publisher rabbitmq.Publisher, logger *slog.Logger) *SubscriptionService {
	return &SubscriptionService{repo: repo, publisher: publisher, logger: logger}
}

func validCycle(cycle string) bool {
	switch cycle {
	case domain.CycleMonthly, domain.CycleQuarterly, domain.CycleBiannual:
		return true
	}
	return false
}

// Create starts a subscription for a product on a billing cycle. The price
// per cycle is the product price with the flat rule discount applied; a
// missing rule means no discount.
func (s *SubscriptionService) Create(ctx context.Context, userID, productID uuid.UUID, cycle string) (*domain.Subscription, error) {
	if !validCycle(cycle) {
		return nil, apperr.Unprocessable("unknown billing cycle")
	}

	product, err := s.repo.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, err
	}
	if !product.IsActive {
		return nil, apperr.Unprocessable("product is not available for subscription")
	}

	percent := 0
	rule, err := s.repo.GetDiscountRule(ctx, productID, cycle)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	if rule != nil {
		percent = rule.Percent
	}

	now := time.Now()
	months := domain.CycleMonths(cycle)
	basePrice := product.PriceCents * int64(months)

	return s.repo.CreateSubscription(ctx, &domain.Subscription{
		UserID:             userID,
		ProductID:          productID,
		Cycle:              cycle,
		Status:             domain.SubscriptionActive,
		DiscountPercent:    percent,
		PricePerCycleCents: domain.PriceWithDiscount(basePrice, percent),
		CurrentPeriodStart: now,
		CurrentPeriodEnd:   now.AddDate(0, months, 0),
		AutoRenew:          true,
	})
}

// ListMine returns the caller's subscriptions.
func (s *SubscriptionService) ListMine(ctx context.Context, userID uuid.UUID) ([]domain.Subscription, error) {
	return s.repo.ListSubscriptionsByUser(ctx, userID)
}

func (s *SubscriptionService) getOwned(ctx context.Context, id, userID uuid.UUID) (*domain.Subscription, error) {
	sub, err := s.repo.GetSubscriptionByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("subscription not found")
		}
		return nil, err
	}
	if sub.UserID != userID {
		return nil, apperr.NotFound("subscription not found")
	}
	return sub, nil
}

// Cancel stops the subscription from renewing at the end of the current
// period.
func (s *SubscriptionService) Cancel(ctx context.Context, id, userID uuid.UUID) (*domain.Subscription, error) {
	sub, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	sub.AutoRenew = false
	sub.Status = domain.SubscriptionCancelled
	return s.repo.UpdateSubscription(ctx, sub)
}

// Pause suspends an active subscription.
func (s *SubscriptionService) Pause(ctx context.Context, id, userID uuid.UUID) (*domain.Subscription, error) {
	sub, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if sub.Status != domain.SubscriptionActive {
		return nil, apperr.Conflict("only active subscriptions can be paused")
	}
	sub.Status = domain.SubscriptionPaused
	return s.repo.UpdateSubscription(ctx, sub)
}

// Resume reactivates a paused subscription and starts a fresh period.
func (s *SubscriptionService) Resume(ctx context.Context, id, userID uuid.UUID) (*domain.Subscription, error) {
	sub, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if sub.Status != domain.SubscriptionPaused {
		return nil, apperr.Conflict("only paused subscriptions can be resumed")
	}
	sub.Status = domain.SubscriptionActive
	sub.Advance(time.Now())
	return s.repo.UpdateSubscription(ctx, sub)
}

// SetAutoRenew toggles the renewal flag.
func (s *SubscriptionService) SetAutoRenew(ctx context.Context, id, userID uuid.UUID, autoRenew bool) (*domain.Subscription, error) {
	sub, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	sub.AutoRenew = autoRenew
	return s.repo.UpdateSubscription(ctx, sub)
}

// UpsertDiscountRule creates or replaces the flat percentage rule for a
// (product, cycle) pair (admin).
func (s *SubscriptionService) UpsertDiscountRule(ctx context.Context, productID uuid.UUID, cycle string, percent int) (*domain.DiscountRule, error) {
	if !validCycle(cycle) {
		return nil, apperr.Unprocessable("unknown billing cycle")
	}
	if percent < 0 || percent > 100 {
		return nil, apperr.Unprocessable("percent must be between 0 and 100")
	}
	return s.repo.UpsertDiscountRule(ctx, &domain.DiscountRule{ProductID: productID, Cycle: cycle, Percent: percent})
}

// RenewDue advances every due subscription that still auto-renews and marks
// the rest lapsed. It is called by the scheduler and returns how many
// subscriptions were renewed.
func (s *SubscriptionService) RenewDue(ctx context.Context, now time.Time) (int, error) {
	due, err := s.repo.ListDueSubscriptions(ctx, now)
	if err != nil {
		return 0, err
	}

	renewed := 0
	for i := range due {
		sub := due[i]
		if !sub.AutoRenew {
			sub.Status = domain.SubscriptionLapsed
			if _, err := s.repo.UpdateSubscription(ctx, &sub); err != nil {
				s.logger.Error("failed to lapse subscription", "subscription_id", sub.ID, "error", err)
			}
			continue
		}

		sub.Advance(now)
		updated, err := s.repo.UpdateSubscription(ctx, &sub)
		if err != nil {
			s.logger.Error("failed to renew subscription", "subscription_id", sub.ID, "error", err)
			continue
		}
		renewed++

		if err := s.publisher.Publish(ctx, domain.EventsExchange, domain.RoutingKeySubscriptionRenewed, domain.SubscriptionRenewedEvent{
			SubscriptionID: updated.ID,
			UserID:         updated.UserID,
			PeriodEnd:      updated.CurrentPeriodEnd,
			Timestamp:      now,
		}); err != nil {
			s.logger.Warn("failed to publish renewal event", "subscription_id", updated.ID, "error", err)
		}
	}
	return renewed, nil
}
