/**
 * @description
 * Coupon model and discount arithmetic. A coupon is either a percentage of
 * the order subtotal or a fixed amount; either way the computed discount is
 * clamped so it is never negative and never exceeds the subtotal.
 */
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Coupon discount kinds.
const (
	CouponTypePercent = "percent"
	CouponTypeFixed   = "fixed"
)

// Coupon represents a redeemable discount code.
type Coupon struct {
	ID         uuid.UUID  `json:"id"`
	Code       string     `json:"code"`
	Type       string     `json:"type"`
	Percent    int        `json:"percent,omitempty"`      // for percent coupons, 0..100
	AmountCents int64     `json:"amount_cents,omitempty"` // for fixed coupons
	MaxUses    int        `json:"max_uses"`               // 0 means unlimited
	UsedCount  int        `json:"used_count"`
	ValidFrom  *time.Time `json:"valid_from,omitempty"`
	ValidUntil *time.Time `json:"valid_until,omitempty"`
	IsActive   bool       `json:"is_active"`
	Audit
}

// Usable reports whether the coupon can be redeemed at the given instant.
func (c *Coupon) Usable(now time.Time) bool {
	if !c.IsActive || c.IsDeleted {
		return false
	}
	if c.ValidFrom != nil && now.Before(*c.ValidFrom) {
		return false
	}
	if c.ValidUntil != nil && now.After(*c.ValidUntil) {
		return false
	}
	if c.MaxUses > 0 && c.UsedCount >= c.MaxUses {
		return false
	}
	return true
}

// DiscountFor computes the discount for a subtotal, clamped to [0, subtotal].
func (c *Coupon) DiscountFor(subtotalCents int64) int64 {
	if subtotalCents <= 0 {
		return 0
	}

	var discount int64
	switch c.Type {
	case CouponTypePercent:
		pct := c.Percent
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
		discount = subtotalCents * int64(pct) / 100
	case CouponTypeFixed:
		discount = c.AmountCents
	}

	if discount < 0 {
		return 0
	}
	if discount > subtotalCents {
		return subtotalCents
	}
	return discount
}
