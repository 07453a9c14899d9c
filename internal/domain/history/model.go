package history

import (
	"time"

	"github.com/google/uuid"
)

const DefaultRecordType = "note"

// Entry is an append-only clinical note. Entries are never updated or
// deleted once written.
type Entry struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	PatientID     uuid.UUID  `db:"patient_id" json:"patient_id"`
	AppointmentID *uuid.UUID `db:"appointment_id" json:"appointment_id,omitempty"`
	RecordedBy    uuid.UUID  `db:"recorded_by" json:"recorded_by"`
	RecordType    string     `db:"record_type" json:"record_type"`
	Title         *string    `db:"title" json:"title,omitempty"`
	Body          *string    `db:"body" json:"body,omitempty"`
	Tags          []string   `db:"tags" json:"tags,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}
