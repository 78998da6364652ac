/**
 * @description
 * Membership plans and user memberships. Plan copy is multi-language; a user
 * holds at most one active membership at a time.
 */
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/viteezy/commerce-backend/internal/i18n"
)

// MembershipPlan is an admin-managed plan users can join.
type MembershipPlan struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        i18n.Text `json:"name"`
	Perks       i18n.Text `json:"perks"`
	PriceCents  int64     `json:"price_cents"`
	DurationMonths int    `json:"duration_months"`
	IsActive    bool      `json:"is_active"`
	Audit
}

// MembershipPlanView is the single-language response shape of a plan.
type MembershipPlanView struct {
	ID             uuid.UUID `json:"id"`
	Code           string    `json:"code"`
	Name           string    `json:"name"`
	Perks          string    `json:"perks"`
	PriceCents     int64     `json:"price_cents"`
	DurationMonths int       `json:"duration_months"`
	IsActive       bool      `json:"is_active"`
}

// Localize collapses the multi-language fields for the resolved language.
func (p *MembershipPlan) Localize(lang, def string) MembershipPlanView {
	return MembershipPlanView{
		ID:             p.ID,
		Code:           p.Code,
		Name:           i18n.Resolve(p.Name, lang, def),
		Perks:          i18n.Resolve(p.Perks, lang, def),
		PriceCents:     p.PriceCents,
		DurationMonths: p.DurationMonths,
		IsActive:       p.IsActive,
	}
}

// Membership links a user to the plan they joined.
type Membership struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	PlanID    uuid.UUID `json:"plan_id"`
	StartedAt time.Time `json:"started_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Audit
}

// Active reports whether the membership is current at the given instant.
func (m *Membership) Active(now time.Time) bool {
	return !m.IsDeleted && now.Before(m.ExpiresAt)
}
