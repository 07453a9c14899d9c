package room

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/httperr"
)

// TxRunner executes fn inside a datastore transaction visible to
// repositories through the context. Satisfied by db.TxRunner.
type TxRunner interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// PatientDirectory answers referential-existence checks inside the
// assignment transaction. Satisfied by the patient repository.
type PatientDirectory interface {
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}

type Service struct {
	rooms       Repository
	assignments AssignmentRepository
	patients    PatientDirectory
	tx          TxRunner
	logger      zerolog.Logger
}

func NewService(rooms Repository, assignments AssignmentRepository, patients PatientDirectory, tx TxRunner, logger zerolog.Logger) *Service {
	return &Service{rooms: rooms, assignments: assignments, patients: patients, tx: tx, logger: logger}
}

func (s *Service) Create(ctx context.Context, r *Room) (*Room, error) {
	if r.RoomNumber == "" {
		return nil, httperr.InvalidInput("room_number is required")
	}
	if err := s.rooms.Create(ctx, r); err != nil {
		if IsUniqueViolation(err) {
			return nil, httperr.Conflict("room number already exists in ward")
		}
		return nil, httperr.Internal(err)
	}
	return r, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Room, error) {
	r, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httperr.NotFound("room not found")
		}
		return nil, httperr.Internal(err)
	}
	return r, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*WithPatient, int, error) {
	items, total, err := s.rooms.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, httperr.Internal(err)
	}
	return items, total, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, p *Patch) (*Room, error) {
	if p.RoomNumber != nil && *p.RoomNumber == "" {
		return nil, httperr.InvalidInput("room_number must not be empty")
	}
	if err := s.rooms.Update(ctx, id, p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httperr.NotFound("room not found")
		}
		if IsUniqueViolation(err) {
			return nil, httperr.Conflict("room number already exists in ward")
		}
		return nil, httperr.Internal(err)
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	r, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if r.Status == StatusOccupied {
		return httperr.Conflict("room is occupied")
	}
	if err := s.rooms.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return httperr.NotFound("room not found")
		}
		return httperr.Internal(err)
	}
	return nil
}

type AssignInput struct {
	RoomID    uuid.UUID `json:"room_id"`
	PatientID uuid.UUID `json:"patient_id"`
	Reason    *string   `json:"reason"`
}

// Assign admits a patient to a free room. The room row lock is held
// from the status read through the final write, so two concurrent
// assignments to the same room cannot both succeed.
func (s *Service) Assign(ctx context.Context, in AssignInput, staffID uuid.UUID) (*Assignment, error) {
	if in.RoomID == uuid.Nil || in.PatientID == uuid.Nil {
		return nil, httperr.InvalidInput("room_id and patient_id are required")
	}

	a := &Assignment{RoomID: in.RoomID, PatientID: in.PatientID, AssignedBy: staffID, Reason: in.Reason}
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		r, err := s.rooms.GetForUpdate(ctx, in.RoomID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return httperr.NotFound("room not found")
			}
			return httperr.Internal(err)
		}
		if r.Status == StatusOccupied {
			return httperr.Conflict("room already occupied")
		}

		ok, err := s.patients.ExistsByID(ctx, in.PatientID)
		if err != nil {
			return httperr.Internal(err)
		}
		if !ok {
			return httperr.InvalidReference("patient not found")
		}

		if err := s.assignments.Insert(ctx, a); err != nil {
			return httperr.Internal(err)
		}
		if err := s.rooms.SetOccupied(ctx, in.RoomID, in.PatientID, a.ID); err != nil {
			return httperr.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("room_id", in.RoomID.String()).
		Str("patient_id", in.PatientID.String()).
		Str("assignment_id", a.ID.String()).
		Msg("room assigned")
	return a, nil
}

// Vacate frees a room, stamping the active assignment's vacate time.
// Vacating a room that is already free succeeds as a no-op.
func (s *Service) Vacate(ctx context.Context, roomID uuid.UUID) error {
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		r, err := s.rooms.GetForUpdate(ctx, roomID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return httperr.NotFound("room not found")
			}
			return httperr.Internal(err)
		}

		if r.CurrentAssignmentID != nil {
			if err := s.assignments.StampVacated(ctx, *r.CurrentAssignmentID); err != nil {
				return httperr.Internal(err)
			}
		}
		if err := s.rooms.SetFree(ctx, roomID); err != nil {
			return httperr.Internal(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("room_id", roomID.String()).Msg("room vacated")
	return nil
}

func (s *Service) ListAssignments(ctx context.Context, limit int) ([]*AssignmentDetail, error) {
	items, err := s.assignments.ListRecent(ctx, limit)
	if err != nil {
		return nil, httperr.Internal(err)
	}
	return items, nil
}
