package room

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusFree     = "free"
	StatusOccupied = "occupied"
)

// Room tracks occupancy with weak pointers to the current patient and
// the active assignment. Invariant: status=occupied exactly when both
// pointers are set; status=free exactly when both are null.
type Room struct {
	ID                  uuid.UUID  `db:"id" json:"id"`
	RoomNumber          string     `db:"room_number" json:"room_number"`
	Ward                *string    `db:"ward" json:"ward,omitempty"`
	BedLabel            *string    `db:"bed_label" json:"bed_label,omitempty"`
	RoomType            *string    `db:"room_type" json:"room_type,omitempty"`
	Notes               *string    `db:"notes" json:"notes,omitempty"`
	Status              string     `db:"status" json:"status"`
	CurrentPatientID    *uuid.UUID `db:"current_patient_id" json:"current_patient_id,omitempty"`
	CurrentAssignmentID *uuid.UUID `db:"current_assignment_id" json:"current_assignment_id,omitempty"`
	CreatedAt           time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at" json:"updated_at"`
}

// WithPatient is a room list row joined with the occupant's name.
type WithPatient struct {
	Room
	CurrentPatientName *string `db:"current_patient_name" json:"current_patient_name,omitempty"`
}

type Patch struct {
	RoomNumber *string `json:"room_number"`
	Ward       *string `json:"ward"`
	BedLabel   *string `json:"bed_label"`
	RoomType   *string `json:"room_type"`
	Notes      *string `json:"notes"`
}

// Assignment is the durable occupancy record. At most one assignment
// per room has vacated_at null.
type Assignment struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	RoomID     uuid.UUID  `db:"room_id" json:"room_id"`
	PatientID  uuid.UUID  `db:"patient_id" json:"patient_id"`
	AssignedBy uuid.UUID  `db:"assigned_by" json:"assigned_by"`
	Reason     *string    `db:"reason" json:"reason,omitempty"`
	AdmittedAt time.Time  `db:"admitted_at" json:"admitted_at"`
	VacatedAt  *time.Time `db:"vacated_at" json:"vacated_at,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

// AssignmentDetail is an assignment list row joined with room number
// and patient name.
type AssignmentDetail struct {
	Assignment
	RoomNumber  *string `db:"room_number" json:"room_number,omitempty"`
	PatientName *string `db:"patient_name" json:"patient_name,omitempty"`
}
