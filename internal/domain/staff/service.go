package staff

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

func (s *Service) Create(ctx context.Context, m *Member) (*Member, error) {
	if m.Name == "" {
		return nil, httperr.InvalidInput("name is required")
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, httperr.Internal(err)
	}
	return m, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Member, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httperr.NotFound("staff member not found")
		}
		return nil, httperr.Internal(err)
	}
	return m, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Member, int, error) {
	items, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, httperr.Internal(err)
	}
	return items, total, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, p *Patch) (*Member, error) {
	if p.Name != nil && *p.Name == "" {
		return nil, httperr.InvalidInput("name must not be empty")
	}
	if err := s.repo.Update(ctx, id, p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httperr.NotFound("staff member not found")
		}
		return nil, httperr.Internal(err)
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return httperr.NotFound("staff member not found")
		}
		return httperr.Internal(err)
	}
	return nil
}
