package staff

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, m *Member) error
	GetByID(ctx context.Context, id uuid.UUID) (*Member, error)
	List(ctx context.Context, limit, offset int) ([]*Member, int, error)
	Update(ctx context.Context, id uuid.UUID, p *Patch) error
	Delete(ctx context.Context, id uuid.UUID) error
}
