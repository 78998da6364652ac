/**
 * @description
 * Order models. Order items snapshot the product price at purchase time so
 * later catalog edits do not alter historical orders. Totals are integer
 * cents and never negative.
 */
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Order status lifecycle. Only pending orders may be cancelled.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Order represents a placed order.
type Order struct {
	ID            uuid.UUID   `json:"id"`
	UserID        uuid.UUID   `json:"user_id"`
	Status        string      `json:"status"`
	Items         []OrderItem `json:"items"`
	SubtotalCents int64       `json:"subtotal_cents"`
	DiscountCents int64       `json:"discount_cents"`
	TotalCents    int64       `json:"total_cents"`
	CouponCode    *string     `json:"coupon_code,omitempty"`
	PlacedAt      time.Time   `json:"placed_at"`
	Audit
}

// OrderItem is a line of an order with the price snapshot taken at checkout.
type OrderItem struct {
	ProductID      uuid.UUID `json:"product_id"`
	ProductName    string    `json:"product_name"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int64     `json:"unit_price_cents"`
}

// LineTotal returns quantity times unit price in cents.
func (i OrderItem) LineTotal() int64 {
	return int64(i.Quantity) * i.UnitPriceCents
}
