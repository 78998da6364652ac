/**
 * @description
 * Product reviews. The body is user-submitted markdown; the rendered,
 * sanitized HTML is stored alongside the raw source. Only approved reviews
 * are publicly listed.
 */
package domain

import (
	"github.com/google/uuid"
)

// Review moderation states.
const (
	ReviewPending  = "pending"
	ReviewApproved = "approved"
	ReviewRejected = "rejected"
)

// Review is a customer review of a product.
type Review struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	UserID    uuid.UUID `json:"user_id"`
	Rating    int       `json:"rating"` // 1..5
	Title     string    `json:"title"`
	Body      string    `json:"body"`      // raw markdown
	BodyHTML  string    `json:"body_html"` // sanitized rendering of Body
	Status    string    `json:"status"`
	Audit
}

// Wishlist is the set of products a user has saved for later.
type Wishlist struct {
	UserID     uuid.UUID   `json:"user_id"`
	ProductIDs []uuid.UUID `json:"product_ids"`
}
