package medicine

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, m *Medicine) error
	GetByID(ctx context.Context, id uuid.UUID) (*Medicine, error)
	// GetForUpdate reads the medicine under a transaction-scoped
	// exclusive row lock. Must be called inside a transaction.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*Medicine, error)
	List(ctx context.Context, limit, offset int) ([]*Medicine, int, error)
	ListLowStock(ctx context.Context) ([]*Medicine, error)
	Update(ctx context.Context, id uuid.UUID, p *Patch) error
	Decrement(ctx context.Context, id uuid.UUID, qty int) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type IssueRepository interface {
	Insert(ctx context.Context, i *Issue) error
	ListRecent(ctx context.Context, limit int) ([]*IssueDetail, error)
}
