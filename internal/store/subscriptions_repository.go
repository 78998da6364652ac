/**
 * @description
 * Database operations for subscriptions and the (product, cycle) discount
 * rules, including the renewal-sweep query used by the scheduler.
 */
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/viteezy/commerce-backend/internal/domain"
)

const subscriptionColumns = `id, user_id, product_id, cycle, status, discount_percent, price_per_cycle_cents,
        current_period_start, current_period_end, auto_renew, created_at, updated_at`

// CreateSubscription inserts a subscription row.
func (r *Repository) CreateSubscription(ctx context.Context, s *domain.Subscription) (*domain.Subscription, error) {
	query := `
        INSERT INTO subscriptions (user_id, product_id, cycle, status, discount_percent, price_per_cycle_cents,
            current_period_start, current_period_end, auto_renew, created_by, updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $1, $1)
        RETURNING ` + subscriptionColumns
	row := r.db.QueryRow(ctx, query,
		s.UserID, s.ProductID, s.Cycle, s.Status, s.DiscountPercent, s.PricePerCycleCents,
		s.CurrentPeriodStart, s.CurrentPeriodEnd, s.AutoRenew)

	created, err := scanSubscription(row)
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

// UpdateSubscription persists status, period and renewal changes.
func (r *Repository) UpdateSubscription(ctx context.Context, s *domain.Subscription) (*domain.Subscription, error) {
	query := `
        UPDATE subscriptions
        SET status = $2, current_period_start = $3, current_period_end = $4, auto_renew = $5, updated_at = NOW()
        WHERE id = $1 AND is_deleted = FALSE
        RETURNING ` + subscriptionColumns
	updated, err := scanSubscription(r.db.QueryRow(ctx, query,
		s.ID, s.Status, s.CurrentPeriodStart, s.CurrentPeriodEnd, s.AutoRenew))
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

// GetSubscriptionByID fetches one subscription.
func (r *Repository) GetSubscriptionByID(ctx context.Context, id uuid.UUID) (*domain.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE id = $1 AND is_deleted = FALSE`
	s, err := scanSubscription(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return s, nil
}

// ListSubscriptionsByUser returns all of a user's subscriptions.
func (r *Repository) ListSubscriptionsByUser(ctx context.Context, userID uuid.UUID) ([]domain.Subscription, error) {
	rows, err := r.db.Query(ctx, `
        SELECT `+subscriptionColumns+`
        FROM subscriptions
        WHERE user_id = $1 AND is_deleted = FALSE
        ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var subs []domain.Subscription
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *s)
	}
	return subs, rows.Err()
}

// ListDueSubscriptions returns active subscriptions whose current period has
// ended, for the renewal sweep.
func (r *Repository) ListDueSubscriptions(ctx context.Context, now time.Time) ([]domain.Subscription, error) {
	rows, err := r.db.Query(ctx, `
        SELECT `+subscriptionColumns+`
        FROM subscriptions
        WHERE status = $1 AND current_period_end <= $2 AND is_deleted = FALSE`, domain.SubscriptionActive, now)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var subs []domain.Subscription
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *s)
	}
	return subs, rows.Err()
}

// CountActiveSubscriptions returns the number of active subscriptions.
func (r *Repository) CountActiveSubscriptions(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
        SELECT COUNT(*) FROM subscriptions
        WHERE status = $1 AND is_deleted = FALSE`, domain.SubscriptionActive).Scan(&count)
	if err != nil {
		return 0, mapError(err)
	}
	return count, nil
}

// GetDiscountRule looks up the flat percentage rule for (product, cycle).
func (r *Repository) GetDiscountRule(ctx context.Context, productID uuid.UUID, cycle string) (*domain.DiscountRule, error) {
	var rule domain.DiscountRule
	query := `
        SELECT id, product_id, cycle, percent, created_at, updated_at
        FROM subscription_discount_rules
        WHERE product_id = $1 AND cycle = $2 AND is_deleted = FALSE`
	err := r.db.QueryRow(ctx, query, productID, cycle).Scan(
		&rule.ID, &rule.ProductID, &rule.Cycle, &rule.Percent, &rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &rule, nil
}

// UpsertDiscountRule creates or replaces the rule for (product, cycle).
func (r *Repository) UpsertDiscountRule(ctx context.Context, rule *domain.DiscountRule) (*domain.DiscountRule, error) {
	var out domain.DiscountRule
	query := `
        INSERT INTO subscription_discount_rules (product_id, cycle, percent)
        VALUES ($1, $2, $3)
        ON CONFLICT (product_id, cycle) DO UPDATE SET
            percent = EXCLUDED.percent,
            is_deleted = FALSE,
            deleted_at = NULL,
            updated_at = NOW()
        RETURNING id, product_id, cycle, percent, created_at, updated_at`
	err := r.db.QueryRow(ctx, query, rule.ProductID, rule.Cycle, rule.Percent).Scan(
		&out.ID, &out.ProductID, &out.Cycle, &out.Percent, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &out, nil
}

func scanSubscription(row rowScanner) (*domain.Subscription, error) {
	var s domain.Subscription
	err := row.Scan(&s.ID, &s.UserID, &s.ProductID, &s.Cycle, &s.Status, &s.DiscountPercent,
		&s.PricePerCycleCents, &s.CurrentPeriodStart, &s.CurrentPeriodEnd, &s.AutoRenew,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
