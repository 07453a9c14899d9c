package medicine

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/httperr"
)

const defaultUnit = "tablet"

// TxRunner executes fn inside a datastore transaction visible to
// repositories through the context. Satisfied by db.TxRunner.
type TxRunner interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// PatientDirectory answers referential-existence checks inside the
// issuance transaction. Satisfied by the patient repository.
type PatientDirectory interface {
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}

type Service struct {
	medicines Repository
	issues    IssueRepository
	patients  PatientDirectory
	tx        TxRunner
	logger    zerolog.Logger
}

func NewService(medicines Repository, issues IssueRepository, patients PatientDirectory, tx TxRunner, logger zerolog.Logger) *Service {
	return &Service{medicines: medicines, issues: issues, patients: patients, tx: tx, logger: logger}
}

func (s *Service) Create(ctx context.Context, m *Medicine) (*Medicine, error) {
	if m.Name == "" {
		return nil, httperr.InvalidInput("name is required")
	}
	if m.Quantity < 0 {
		return nil, httperr.InvalidInput("quantity must not be negative")
	}
	if m.Unit == "" {
		m.Unit = defaultUnit
	}
	if err := s.medicines.Create(ctx, m); err != nil {
		return nil, httperr.Internal(err)
	}
	return m, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Medicine, error) {
	m, err := s.medicines.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httperr.NotFound("medicine not found")
		}
		return nil, httperr.Internal(err)
	}
	return m, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Medicine, int, error) {
	items, total, err := s.medicines.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, httperr.Internal(err)
	}
	return items, total, nil
}

// ListLowStock reports catalog rows at or below their reorder threshold.
func (s *Service) ListLowStock(ctx context.Context) ([]*Medicine, error) {
	items, err := s.medicines.ListLowStock(ctx)
	if err != nil {
		return nil, httperr.Internal(err)
	}
	return items, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, p *Patch) (*Medicine, error) {
	if p.Name != nil && *p.Name == "" {
		return nil, httperr.InvalidInput("name must not be empty")
	}
	if p.MinThreshold != nil && *p.MinThreshold < 0 {
		return nil, httperr.InvalidInput("min_threshold must not be negative")
	}
	if err := s.medicines.Update(ctx, id, p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httperr.NotFound("medicine not found")
		}
		return nil, httperr.Internal(err)
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.medicines.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return httperr.NotFound("medicine not found")
		}
		return httperr.Internal(err)
	}
	return nil
}

type IssueInput struct {
	MedicineID   uuid.UUID `json:"medicine_id"`
	PatientID    uuid.UUID `json:"patient_id"`
	Quantity     int       `json:"quantity"`
	Instructions *string   `json:"instructions"`
	SourceBatch  *string   `json:"source_batch"`
}

// Issue decrements stock and records a ledger row in one transaction.
// The stock check and the decrement happen under the same medicine row
// lock, so concurrent issuances cannot drive quantity negative.
func (s *Service) Issue(ctx context.Context, in IssueInput, issuerID uuid.UUID) (*Issue, error) {
	if in.MedicineID == uuid.Nil || in.PatientID == uuid.Nil {
		return nil, httperr.InvalidInput("medicine_id and patient_id are required")
	}
	if in.Quantity <= 0 {
		return nil, httperr.InvalidInput("quantity must be a positive integer")
	}

	issue := &Issue{
		MedicineID:   in.MedicineID,
		PatientID:    in.PatientID,
		IssuedBy:     issuerID,
		Quantity:     in.Quantity,
		Instructions: in.Instructions,
		SourceBatch:  in.SourceBatch,
	}
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		m, err := s.medicines.GetForUpdate(ctx, in.MedicineID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return httperr.NotFound("medicine not found")
			}
			return httperr.Internal(err)
		}

		ok, err := s.patients.ExistsByID(ctx, in.PatientID)
		if err != nil {
			return httperr.Internal(err)
		}
		if !ok {
			return httperr.InvalidReference("patient not found")
		}

		if m.Quantity < in.Quantity {
			return httperr.InsufficientStock("insufficient stock")
		}

		if err := s.medicines.Decrement(ctx, in.MedicineID, in.Quantity); err != nil {
			return httperr.Internal(err)
		}
		if err := s.issues.Insert(ctx, issue); err != nil {
			return httperr.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("medicine_id", in.MedicineID.String()).
		Str("patient_id", in.PatientID.String()).
		Int("quantity", in.Quantity).
		Msg("medicine issued")
	return issue, nil
}

func (s *Service) ListIssues(ctx context.Context, limit int) ([]*IssueDetail, error) {
	items, err := s.issues.ListRecent(ctx, limit)
	if err != nil {
		return nil, httperr.Internal(err)
	}
	return items, nil
}
