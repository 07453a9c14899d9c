package appointment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hms/hms/internal/platform/httperr"
)

// PatientDirectory and DoctorDirectory answer referential-existence
// checks. Satisfied by the patient and doctor repositories.
type PatientDirectory interface {
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}

type DoctorDirectory interface {
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}

type Service struct {
	repo     Repository
	patients PatientDirectory
	doctors  DoctorDirectory
}

func NewService(repo Repository, patients PatientDirectory, doctors DoctorDirectory) *Service {
	return &Service{repo: repo, patients: patients, doctors: doctors}
}

func (s *Service) checkRefs(ctx context.Context, patientID, doctorID *uuid.UUID) error {
	if patientID != nil {
		ok, err := s.patients.ExistsByID(ctx, *patientID)
		if err != nil {
			return httperr.Internal(err)
		}
		if !ok {
			return httperr.InvalidReference("patient not found")
		}
	}
	if doctorID != nil {
		ok, err := s.doctors.ExistsByID(ctx, *doctorID)
		if err != nil {
			return httperr.Internal(err)
		}
		if !ok {
			return httperr.InvalidReference("doctor not found")
		}
	}
	return nil
}

func (s *Service) Create(ctx context.Context, in Input) (*Appointment, error) {
	if err := s.checkRefs(ctx, in.PatientID, in.DoctorID); err != nil {
		return nil, err
	}

	status := DefaultStatus
	if in.Status != nil && *in.Status != "" {
		status = *in.Status
	}
	a := &Appointment{
		PatientID: in.PatientID,
		DoctorID:  in.DoctorID,
		Datetime:  in.When(),
		Status:    status,
		Notes:     in.Notes,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, httperr.Internal(err)
	}
	return a, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httperr.NotFound("appointment not found")
		}
		return nil, httperr.Internal(err)
	}
	return a, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Detail, int, error) {
	items, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, httperr.Internal(err)
	}
	return items, total, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in Input) (*Appointment, error) {
	if err := s.checkRefs(ctx, in.PatientID, in.DoctorID); err != nil {
		return nil, err
	}

	p := &Patch{
		PatientID: in.PatientID,
		DoctorID:  in.DoctorID,
		Datetime:  in.When(),
		Status:    in.Status,
		Notes:     in.Notes,
	}
	if err := s.repo.Update(ctx, id, p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httperr.NotFound("appointment not found")
		}
		return nil, httperr.Internal(err)
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return httperr.NotFound("appointment not found")
		}
		return httperr.Internal(err)
	}
	return nil
}
