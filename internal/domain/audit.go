/**
 * @description
 * Shared record-keeping fields embedded by every persisted entity: creation
 * and update audit references plus the soft-delete convention. Soft-deleted
 * rows stay in the database and are excluded from default queries.
 */
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Audit carries the bookkeeping columns common to all entities.
type Audit struct {
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	CreatedBy *uuid.UUID `json:"created_by,omitempty"`
	UpdatedBy *uuid.UUID `json:"updated_by,omitempty"`
	IsDeleted bool       `json:"-"`
	DeletedAt *time.Time `json:"-"`
}
