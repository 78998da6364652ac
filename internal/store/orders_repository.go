/**
 * @description
 * Database operations for orders. Line items are a JSONB column because they
 * are immutable price snapshots read and written as one document with the
 * order.
 */
package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/viteezy/commerce-backend/internal/domain"
)

const orderColumns = `id, user_id, status, items, subtotal_cents, discount_cents, total_cents, coupon_code, placed_at, created_at, updated_at`

// CreateOrder inserts a placed order with its item snapshot.
func (r *Repository) CreateOrder(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	query := `
        INSERT INTO orders (user_id, status, items, subtotal_cents, discount_cents, total_cents, coupon_code, placed_at, created_by, updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $1, $1)
        RETURNING ` + orderColumns
	row := r.db.QueryRow(ctx, query,
		o.UserID, o.Status, o.Items, o.SubtotalCents, o.DiscountCents, o.TotalCents, o.CouponCode, o.PlacedAt)

	created, err := scanOrder(row)
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

// GetOrderByID fetches an order, excluding soft-deleted rows.
func (r *Repository) GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 AND is_deleted = FALSE`
	o, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return o, nil
}

// ListOrders returns a page of orders and the total count. A nil userID lists
// all orders (admin view); otherwise only the given user's orders.
func (r *Repository) ListOrders(ctx context.Context, userID *uuid.UUID, limit, offset int) ([]domain.Order, int, error) {
	filter := `is_deleted = FALSE`
	args := []any{limit, offset}
	if userID != nil {
		filter += ` AND user_id = $3`
		args = append(args, *userID)
	}

	var total int
	countArgs := args[2:]
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE `+countFilter(filter), countArgs...).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	rows, err := r.db.Query(ctx, `
        SELECT `+orderColumns+`
        FROM orders
        WHERE `+filter+`
        ORDER BY placed_at DESC
        LIMIT $1 OFFSET $2`, args...)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *o)
	}
	return orders, total, rows.Err()
}

// UpdateOrderStatus transitions an order, guarded by the expected current
// status so concurrent updates cannot double-apply.
func (r *Repository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, from, to string) (*domain.Order, error) {
	query := `
        UPDATE orders
        SET status = $3, updated_at = NOW()
        WHERE id = $1 AND status = $2 AND is_deleted = FALSE
        RETURNING ` + orderColumns
	o, err := scanOrder(r.db.QueryRow(ctx, query, id, from, to))
	if err != nil {
		return nil, mapError(err)
	}
	return o, nil
}

// RecentOrders returns the most recently placed orders for the dashboard.
func (r *Repository) RecentOrders(ctx context.Context, limit int) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, `
        SELECT `+orderColumns+`
        FROM orders
        WHERE is_deleted = FALSE
        ORDER BY placed_at DESC
        LIMIT $1`, limit)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

// countFilter strips the pagination placeholders out of a list filter so the
// same condition can back the COUNT query with renumbered arguments.
func countFilter(filter string) string {
	// The list filters only ever add a single extra placeholder after
	// LIMIT/OFFSET, so $3 becomes $1 in the count query.
	out := make([]byte, 0, len(filter))
	for i := 0; i < len(filter); i++ {
		if filter[i] == '$' && i+1 < len(filter) && filter[i+1] == '3' {
			out = append(out, '$', '1')
			i++
			continue
		}
		out = append(out, filter[i])
	}
	return string(out)
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(&o.ID, &o.UserID, &o.Status, &o.Items, &o.SubtotalCents, &o.DiscountCents,
		&o.TotalCents, &o.CouponCode, &o.PlacedAt, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
