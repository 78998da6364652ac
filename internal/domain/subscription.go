/**
 * @description
 * Subscription models: a recurring order of a product on a billing cycle with
 * a flat percentage discount keyed on (plan, cycle). Renewal advances the
 * current period by the cycle length.
 */
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Billing cycles.
const (
	CycleMonthly  = "monthly"
	CycleQuarterly = "quarterly"
	CycleBiannual = "biannual"
)

// Subscription statuses.
const (
	SubscriptionActive = "active"
	SubscriptionPaused = "paused"
	SubscriptionLapsed = "lapsed"
	SubscriptionCancelled = "cancelled"
)

// CycleMonths returns the length of a billing cycle in months, defaulting to
// one month for unknown values.
func CycleMonths(cycle string) int {
	switch cycle {
	case CycleQuarterly:
		return 3
	case CycleBiannual:
		return 6
	default:
		return 1
	}
}

// Subscription represents a recurring product order for a user.
type Subscription struct {
	ID                 uuid.UUID `json:"id"`
	UserID             uuid.UUID `json:"user_id"`
	ProductID          uuid.UUID `json:"product_id"`
	Cycle              string    `json:"cycle"`
	Status             string    `json:"status"`
	DiscountPercent    int       `json:"discount_percent"`
	PricePerCycleCents int64     `json:"price_per_cycle_cents"`
	CurrentPeriodStart time.Time `json:"current_period_start"`
	CurrentPeriodEnd   time.Time `json:"current_period_end"`
	AutoRenew          bool      `json:"auto_renew"`
	Audit
}

// Advance moves the subscription into its next billing period.
func (s *Subscription) Advance(now time.Time) {
	s.CurrentPeriodStart = now
	s.CurrentPeriodEnd = now.AddDate(0, CycleMonths(s.Cycle), 0)
}

// DiscountRule is a flat percentage discount keyed on (product, cycle).
type DiscountRule struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Cycle     string    `json:"cycle"`
	Percent   int       `json:"percent"`
	Audit
}

// PriceWithDiscount applies a flat percentage discount to a base price,
// clamped so the result is never negative and the discount never exceeds the
// base price.
func PriceWithDiscount(basePriceCents int64, percent int) int64 {
	if basePriceCents <= 0 {
		return 0
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	discount := basePriceCents * int64(percent) / 100
	return basePriceCents - discount
}
