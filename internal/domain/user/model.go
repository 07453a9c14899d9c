package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/platform/auth"
)

// User maps to the users table. The password hash never serializes.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         *string   `db:"name" json:"name,omitempty"`
	Email        string    `db:"email" json:"email"`
	PasswordHash *string   `db:"password" json:"-"`
	Role         auth.Role `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Patch carries a merge-patch update: nil fields keep their stored
// value. Role is intentionally absent; it is fixed at creation.
type Patch struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}
