package appointment

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	List(ctx context.Context, limit, offset int) ([]*Detail, int, error)
	Update(ctx context.Context, id uuid.UUID, p *Patch) error
	Delete(ctx context.Context, id uuid.UUID) error
}
