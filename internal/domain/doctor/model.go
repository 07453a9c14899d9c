package doctor

import (
	"time"

	"github.com/google/uuid"
)

// Doctor is a practitioner record, optionally backed by a login account.
type Doctor struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	UserID         *uuid.UUID `db:"user_id" json:"user_id,omitempty"`
	Name           string     `db:"name" json:"name"`
	Email          *string    `db:"email" json:"email,omitempty"`
	Phone          *string    `db:"phone" json:"phone,omitempty"`
	Specialty      *string    `db:"specialty" json:"specialty,omitempty"`
	Qualifications *string    `db:"qualifications" json:"qualifications,omitempty"`
	Bio            *string    `db:"bio" json:"bio,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}

type Patch struct {
	Name           *string `json:"name"`
	Email          *string `json:"email"`
	Phone          *string `json:"phone"`
	Specialty      *string `json:"specialty"`
	Qualifications *string `json:"qualifications"`
	Bio            *string `json:"bio"`
}
