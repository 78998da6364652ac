/**
 * @description
 * Database operations for coupons, including the atomic use-count increment
 * and the scheduled expiry sweep.
 */
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/viteezy/commerce-backend/internal/domain"
)

const couponColumns = `id, code, type, percent, amount_cents, max_uses, used_count, valid_from, valid_until, is_active, created_at, updated_at`

// CreateCoupon inserts a coupon. Codes are unique.
func (r *Repository) CreateCoupon(ctx context.Context, c *domain.Coupon) (*domain.Coupon, error) {
	query := `
        INSERT INTO coupons (code, type, percent, amount_cents, max_uses, valid_from, valid_until, is_active, created_by, updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
        RETURNING ` + couponColumns
	row := r.db.QueryRow(ctx, query,
		c.Code, c.Type, c.Percent, c.AmountCents, c.MaxUses, c.ValidFrom, c.ValidUntil, c.IsActive, c.CreatedBy)

	created, err := scanCoupon(row)
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

// UpdateCoupon overwrites the mutable fields of a coupon.
func (r *Repository) UpdateCoupon(ctx context.Context, c *domain.Coupon) (*domain.Coupon, error) {
	query := `
        UPDATE coupons
        SET type = $2, percent = $3, amount_cents = $4, max_uses = $5,
            valid_from = $6, valid_until = $7, is_active = $8, updated_at = NOW(), updated_by = $9
        WHERE id = $1 AND is_deleted = FALSE
        RETURNING ` + couponColumns
	row := r.db.QueryRow(ctx, query,
		c.ID, c.Type, c.Percent, c.AmountCents, c.MaxUses, c.ValidFrom, c.ValidUntil, c.IsActive, c.UpdatedBy)

	updated, err := scanCoupon(row)
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

// GetCouponByCode fetches a coupon by its unique code.
func (r *Repository) GetCouponByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE code = $1 AND is_deleted = FALSE`
	c, err := scanCoupon(r.db.QueryRow(ctx, query, code))
	if err != nil {
		return nil, mapError(err)
	}
	return c, nil
}

// ListCoupons returns a page of coupons and the total count.
func (r *Repository) ListCoupons(ctx context.Context, limit, offset int) ([]domain.Coupon, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM coupons WHERE is_deleted = FALSE`).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	rows, err := r.db.Query(ctx, `
        SELECT `+couponColumns+`
        FROM coupons
        WHERE is_deleted = FALSE
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	var coupons []domain.Coupon
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			return nil, 0, err
		}
		coupons = append(coupons, *c)
	}
	return coupons, total, rows.Err()
}

// SoftDeleteCoupon marks a coupon deleted.
func (r *Repository) SoftDeleteCoupon(ctx context.Context, id, by uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE coupons
        SET is_deleted = TRUE, deleted_at = NOW(), updated_at = NOW(), updated_by = $2
        WHERE id = $1 AND is_deleted = FALSE`, id, by)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementCouponUse bumps the use counter, refusing to pass max_uses so two
// concurrent checkouts cannot over-redeem a limited coupon.
func (r *Repository) IncrementCouponUse(ctx context.Context, code string) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE coupons
        SET used_count = used_count + 1, updated_at = NOW()
        WHERE code = $1 AND is_deleted = FALSE
          AND (max_uses = 0 OR used_count < max_uses)`, code)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeactivateExpiredCoupons flips is_active off for coupons whose validity
// window has closed. Returns the number of coupons deactivated.
func (r *Repository) DeactivateExpiredCoupons(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
        UPDATE coupons
        SET is_active = FALSE, updated_at = NOW()
        WHERE is_active = TRUE AND is_deleted = FALSE AND valid_until IS NOT NULL AND valid_until < $1`, now)
	if err != nil {
		return 0, mapError(err)
	}
	return tag.RowsAffected(), nil
}

func scanCoupon(row rowScanner) (*domain.Coupon, error) {
	var c domain.Coupon
	err := row.Scan(&c.ID, &c.Code, &c.Type, &c.Percent, &c.AmountCents, &c.MaxUses, &c.UsedCount,
		&c.ValidFrom, &c.ValidUntil, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
