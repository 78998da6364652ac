/**
 * @description
 * Aggregate queries backing the admin dashboard.
 */
package store

import (
	"context"

	"github.com/viteezy/commerce-backend/internal/domain"
)

// CountUsers returns the number of non-deleted accounts.
func (r *Repository) CountUsers(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE is_deleted = FALSE`).Scan(&count)
	if err != nil {
		return 0, mapError(err)
	}
	return count, nil
}

// CountOrders returns the number of non-deleted orders.
func (r *Repository) CountOrders(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE is_deleted = FALSE`).Scan(&count)
	if err != nil {
		return 0, mapError(err)
	}
	return count, nil
}

// SumRevenueCents totals the value of all orders that were not cancelled.
func (r *Repository) SumRevenueCents(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `
        SELECT COALESCE(SUM(total_cents), 0) FROM orders
        WHERE status <> $1 AND is_deleted = FALSE`, domain.OrderStatusCancelled).Scan(&total)
	if err != nil {
		return 0, mapError(err)
	}
	return total, nil
}

// CountReferrals returns the total number of recorded member referrals.
func (r *Repository) CountReferrals(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM member_referrals`).Scan(&count)
	if err != nil {
		return 0, mapError(err)
	}
	return count, nil
}
