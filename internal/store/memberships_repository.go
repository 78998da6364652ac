/**
 * @description
 * Database operations for membership plans and user memberships.
 */
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/viteezy/commerce-backend/internal/domain"
)

const planColumns = `id, code, name, perks, price_cents, duration_months, is_active, created_at, updated_at`

// CreateMembershipPlan inserts a plan. Codes are unique.
func (r *Repository) CreateMembershipPlan(ctx context.Context, p *domain.MembershipPlan) (*domain.MembershipPlan, error) {
	query := `
        INSERT INTO membership_plans (code, name, perks, price_cents, duration_months, is_active, created_by, updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
        RETURNING ` + planColumns
	row := r.db.QueryRow(ctx, query,
		p.Code, p.Name, p.Perks, p.PriceCents, p.DurationMonths, p.IsActive, p.CreatedBy)

	created, err := scanPlan(row)
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

// UpdateMembershipPlan overwrites the mutable fields of a plan.
func (r *Repository) UpdateMembershipPlan(ctx context.Context, p *domain.MembershipPlan) (*domain.MembershipPlan, error) {
	query := `
        UPDATE membership_plans
        SET name = $2, perks = $3, price_cents = $4, duration_months = $5, is_active = $6,
            updated_at = NOW(), updated_by = $7
        WHERE id = $1 AND is_deleted = FALSE
        RETURNING ` + planColumns
	updated, err := scanPlan(r.db.QueryRow(ctx, query,
		p.ID, p.Name, p.Perks, p.PriceCents, p.DurationMonths, p.IsActive, p.UpdatedBy))
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

// GetMembershipPlanByID fetches one plan.
func (r *Repository) GetMembershipPlanByID(ctx context.Context, id uuid.UUID) (*domain.MembershipPlan, error) {
	query := `SELECT ` + planColumns + ` FROM membership_plans WHERE id = $1 AND is_deleted = FALSE`
	p, err := scanPlan(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return p, nil
}

// ListMembershipPlans returns all plans, optionally only active ones.
func (r *Repository) ListMembershipPlans(ctx context.Context, activeOnly bool) ([]domain.MembershipPlan, error) {
	filter := `is_deleted = FALSE`
	if activeOnly {
		filter += ` AND is_active = TRUE`
	}
	rows, err := r.db.Query(ctx, `
        SELECT `+planColumns+`
        FROM membership_plans
        WHERE `+filter+`
        ORDER BY price_cents`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var plans []domain.MembershipPlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *p)
	}
	return plans, rows.Err()
}

// SoftDeleteMembershipPlan marks a plan deleted.
func (r *Repository) SoftDeleteMembershipPlan(ctx context.Context, id, by uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE membership_plans
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

// CreateMembership records a user joining a plan.
func (r *Repository) CreateMembership(ctx context.Context, m *domain.Membership) (*domain.Membership, error) {
	var created domain.Membership
	query := `
        INSERT INTO memberships (user_id, plan_id, started_at, expires_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id, user_id, plan_id, started_at, expires_at, created_at, updated_at`
	err := r.db.QueryRow(ctx, query, m.UserID, m.PlanID, m.StartedAt, m.ExpiresAt).Scan(
		&created.ID, &created.UserID, &created.PlanID, &created.StartedAt, &created.ExpiresAt,
		&created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &created, nil
}

// GetActiveMembership returns the user's current membership, if any.
func (r *Repository) GetActiveMembership(ctx context.Context, userID uuid.UUID, now time.Time) (*domain.Membership, error) {
	var m domain.Membership
	query := `
        SELECT id, user_id, plan_id, started_at, expires_at, created_at, updated_at
        FROM memberships
        WHERE user_id = $1 AND expires_at > $2 AND is_deleted = FALSE
        ORDER BY expires_at DESC
        LIMIT 1`
	err := r.db.QueryRow(ctx, query, userID, now).Scan(
		&m.ID, &m.UserID, &m.PlanID, &m.StartedAt, &m.ExpiresAt, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &m, nil
}

func scanPlan(row rowScanner) (*domain.MembershipPlan, error) {
	var p domain.MembershipPlan
	err := row.Scan(&p.ID, &p.Code, &p.Name, &p.Perks, &p.PriceCents, &p.DurationMonths,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
