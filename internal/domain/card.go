/**
 * @description
 * Saved payment cards. Only the gateway token reference, brand, masked last
 * four digits and expiry are stored; the PAN never reaches this service.
 */
package domain

import (
	"github.com/google/uuid"
)

// SavedCard is a tokenized payment method belonging to a user.
type SavedCard struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	Brand        string    `json:"brand"`
	Last4        string    `json:"last4"`
	ExpiryMonth  int       `json:"expiry_month"`
	ExpiryYear   int       `json:"expiry_year"`
	GatewayToken string    `json:"-"`
	IsDefault    bool      `json:"is_default"`
	Audit
}
