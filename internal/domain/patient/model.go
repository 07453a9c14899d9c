package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient is a demographic record, optionally linked to a login account
// when created as a registration side effect.
type Patient struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	UserID    *uuid.UUID `db:"user_id" json:"user_id,omitempty"`
	Name      *string    `db:"name" json:"name,omitempty"`
	Age       *int       `db:"age" json:"age,omitempty"`
	Gender    *string    `db:"gender" json:"gender,omitempty"`
	Phone     *string    `db:"phone" json:"phone,omitempty"`
	Address   *string    `db:"address" json:"address,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

// Patch carries a merge-patch update: nil fields keep their stored value.
type Patch struct {
	Name    *string `json:"name"`
	Age     *int    `json:"age"`
	Gender  *string `json:"gender"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}
