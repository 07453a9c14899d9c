package medicine

import (
	"time"

	"github.com/google/uuid"
)

// Medicine is a stock catalog row. Quantity never goes negative; the
// issuance workflow enforces that under a row lock.
type Medicine struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Name         string     `db:"name" json:"name"`
	Brand        *string    `db:"brand" json:"brand,omitempty"`
	BatchNo      *string    `db:"batch_no" json:"batch_no,omitempty"`
	ExpiryDate   *time.Time `db:"expiry_date" json:"expiry_date,omitempty"`
	Quantity     int        `db:"quantity" json:"quantity"`
	Unit         string     `db:"unit" json:"unit"`
	MinThreshold int        `db:"min_threshold" json:"min_threshold"`
	Location     *string    `db:"location" json:"location,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

type Patch struct {
	Name         *string    `json:"name"`
	Brand        *string    `json:"brand"`
	BatchNo      *string    `json:"batch_no"`
	ExpiryDate   *time.Time `json:"expiry_date"`
	Unit         *string    `json:"unit"`
	MinThreshold *int       `json:"min_threshold"`
	Location     *string    `json:"location"`
}

// Issue is one row of the append-only issuance ledger.
type Issue struct {
	ID           uuid.UUID `db:"id" json:"id"`
	MedicineID   uuid.UUID `db:"medicine_id" json:"medicine_id"`
	PatientID    uuid.UUID `db:"patient_id" json:"patient_id"`
	IssuedBy     uuid.UUID `db:"issued_by" json:"issued_by"`
	Quantity     int       `db:"quantity" json:"quantity"`
	Instructions *string   `db:"instructions" json:"instructions,omitempty"`
	SourceBatch  *string   `db:"source_batch" json:"source_batch,omitempty"`
	IssuedAt     time.Time `db:"issued_at" json:"issued_at"`
}

// IssueDetail is a ledger row joined with medicine and patient names.
type IssueDetail struct {
	Issue
	MedicineName *string `db:"medicine_name" json:"medicine_name,omitempty"`
	PatientName  *string `db:"patient_name" json:"patient_name,omitempty"`
}
