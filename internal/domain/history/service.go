package history

import (
	"context"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/platform/httperr"
)

// PatientDirectory answers referential-existence checks. Satisfied by
// the patient repository.
type PatientDirectory interface {
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}

type Service struct {
	repo     Repository
	patients PatientDirectory
}

func NewService(repo Repository, patients PatientDirectory) *Service {
	return &Service{repo: repo, patients: patients}
}

type CreateInput struct {
	PatientID     uuid.UUID  `json:"patient_id"`
	AppointmentID *uuid.UUID `json:"appointment_id"`
	RecordType    *string    `json:"record_type"`
	Title         *string    `json:"title"`
	Body          *string    `json:"body"`
	Tags          []string   `json:"tags"`
}

// Create appends a clinical note, recording the authenticated caller.
func (s *Service) Create(ctx context.Context, in CreateInput, recordedBy uuid.UUID) (*Entry, error) {
	if in.PatientID == uuid.Nil {
		return nil, httperr.InvalidInput("patient_id is required")
	}
	ok, err := s.patients.ExistsByID(ctx, in.PatientID)
	if err != nil {
		return nil, httperr.Internal(err)
	}
	if !ok {
		return nil, httperr.InvalidReference("patient not found")
	}

	recordType := DefaultRecordType
	if in.RecordType != nil && *in.RecordType != "" {
		recordType = *in.RecordType
	}
	e := &Entry{
		PatientID:     in.PatientID,
		AppointmentID: in.AppointmentID,
		RecordedBy:    recordedBy,
		RecordType:    recordType,
		Title:         in.Title,
		Body:          in.Body,
		Tags:          in.Tags,
	}
	if err := s.repo.Insert(ctx, e); err != nil {
		return nil, httperr.Internal(err)
	}
	return e, nil
}

func (s *Service) List(ctx context.Context, patientID *uuid.UUID, limit int) ([]*Entry, error) {
	items, err := s.repo.List(ctx, patientID, limit)
	if err != nil {
		return nil, httperr.Internal(err)
	}
	return items, nil
}
