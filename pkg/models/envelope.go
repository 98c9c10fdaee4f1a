package models

import (
	"time"

	"github.com/google/uuid"
)

// Envelope carries the columns every Arbor entity shares. Embedded by each
// entity struct; id and timestamps are server-assigned, display_order exists
// only for client-side ordering and carries no uniqueness guarantee.
type Envelope struct {
	ID           uuid.UUID `db:"id" json:"id"`
	OrgID        uuid.UUID `db:"org_id" json:"org_id"`
	DisplayOrder int       `db:"display_order" json:"display_order"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
