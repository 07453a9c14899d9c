package doctor

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

func (s *Service) Create(ctx context.Context, d *Doctor) (*Doctor, error) {
	if d.Name == "" {
		return nil, httperr.InvalidInput("name is required")
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, httperr.Internal(err)
	}
	return d, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httperr.NotFound("doctor not found")
		}
		return nil, httperr.Internal(err)
	}
	return d, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	items, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, httperr.Internal(err)
	}
	return items, total, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, p *Patch) (*Doctor, error) {
	if p.Name != nil && *p.Name == "" {
		return nil, httperr.InvalidInput("name must not be empty")
	}
	if err := s.repo.Update(ctx, id, p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httperr.NotFound("doctor not found")
		}
		return nil, httperr.Internal(err)
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return httperr.NotFound("doctor not found")
		}
		return httperr.Internal(err)
	}
	return nil
}
