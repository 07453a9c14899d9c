package patient

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hms/hms/internal/platform/httperr"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateFromRegistration records a patient row for a newly registered
// patient-role account. Satisfies the user service's recorder hook.
func (s *Service) CreateFromRegistration(ctx context.Context, userID uuid.UUID, name *string) error {
	return s.repo.Create(ctx, &Patient{UserID: &userID, Name: name})
}

func (s *Service) Create(ctx context.Context, p *Patient) (*Patient, error) {
	if p.Name == nil || *p.Name == "" {
		return nil, httperr.InvalidInput("name is required")
	}
	if p.Age != nil && *p.Age < 0 {
		return nil, httperr.InvalidInput("age must not be negative")
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, httperr.Internal(err)
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httperr.NotFound("patient not found")
		}
		return nil, httperr.Internal(err)
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	items, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, httperr.Internal(err)
	}
	return items, total, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, p *Patch) (*Patient, error) {
	if p.Age != nil && *p.Age < 0 {
		return nil, httperr.InvalidInput("age must not be negative")
	}
	if err := s.repo.Update(ctx, id, p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httperr.NotFound("patient not found")
		}
		return nil, httperr.Internal(err)
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return httperr.NotFound("patient not found")
		}
		return httperr.Internal(err)
	}
	return nil
}
