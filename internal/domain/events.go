/**
 * @description
 * Event payloads published to the message broker when notable domain state
 * changes happen. Downstream consumers (mail, analytics) bind to the routing
 * keys declared here.
 */
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Exchange and routing keys for domain events.
const (
	EventsExchange = "commerce.events"

	RoutingKeyUserRegistered      = "user.registered"
	RoutingKeyOrderCreated        = "order.created"
	RoutingKeyOrderCancelled      = "order.cancelled"
	RoutingKeySubscriptionRenewed = "subscription.renewed"
	RoutingKeyReviewSubmitted     = "review.submitted"
)

// UserRegisteredEvent is published after a successful registration.
type UserRegisteredEvent struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderEvent is published when an order is created or cancelled.
type OrderEvent struct {
	OrderID    uuid.UUID `json:"order_id"`
	UserID     uuid.UUID `json:"user_id"`
	TotalCents int64     `json:"total_cents"`
	Status     string    `json:"status"`
	Timestamp  time.Time `json:"timestamp"`
}

// SubscriptionRenewedEvent is published when a renewal sweep advances a
// subscription into its next period.
type SubscriptionRenewedEvent struct {
	SubscriptionID uuid.UUID `json:"subscription_id"`
	UserID         uuid.UUID `json:"user_id"`
	PeriodEnd      time.Time `json:"period_end"`
	Timestamp      time.Time `json:"timestamp"`
}

// ReviewSubmittedEvent is published when a customer submits a review.
type ReviewSubmittedEvent struct {
	ReviewID  uuid.UUID `json:"review_id"`
	ProductID uuid.UUID `json:"product_id"`
	Rating    int       `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}
