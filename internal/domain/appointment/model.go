package appointment

import (
	"time"

	"github.com/google/uuid"
)

const DefaultStatus = "scheduled"

type Appointment struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	PatientID *uuid.UUID `db:"patient_id" json:"patient_id,omitempty"`
	DoctorID  *uuid.UUID `db:"doctor_id" json:"doctor_id,omitempty"`
	Datetime  *time.Time `db:"datetime" json:"datetime,omitempty"`
	Status    string     `db:"status" json:"status"`
	Notes     *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// Detail is a list row joined with patient and doctor names.
type Detail struct {
	Appointment
	PatientName *string `db:"patient_name" json:"patient_name,omitempty"`
	DoctorName  *string `db:"doctor_name" json:"doctor_name,omitempty"`
}

// Input accepts the scheduling timestamp under either historical field
// name. When() normalizes to one value before anything else sees it.
type Input struct {
	PatientID       *uuid.UUID `json:"patient_id"`
	DoctorID        *uuid.UUID `json:"doctor_id"`
	Datetime        *time.Time `json:"datetime"`
	AppointmentDate *time.Time `json:"appointment_date"`
	Status          *string    `json:"status"`
	Notes           *string    `json:"notes"`
}

// When returns the normalized scheduling timestamp, preferring
// `datetime` over `appointment_date`.
func (in *Input) When() *time.Time {
	if in.Datetime != nil {
		return in.Datetime
	}
	return in.AppointmentDate
}

type Patch struct {
	PatientID *uuid.UUID
	DoctorID  *uuid.UUID
	Datetime  *time.Time
	Status    *string
	Notes     *string
}
