package room

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, r *Room) error
	GetByID(ctx context.Context, id uuid.UUID) (*Room, error)
	// GetForUpdate reads the room under a transaction-scoped exclusive
	// row lock. Must be called inside a transaction.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*Room, error)
	List(ctx context.Context, limit, offset int) ([]*WithPatient, int, error)
	Update(ctx context.Context, id uuid.UUID, p *Patch) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetOccupied(ctx context.Context, roomID, patientID, assignmentID uuid.UUID) error
	SetFree(ctx context.Context, roomID uuid.UUID) error
}

type AssignmentRepository interface {
	Insert(ctx context.Context, a *Assignment) error
	StampVacated(ctx context.Context, id uuid.UUID) error
	ListRecent(ctx context.Context, limit int) ([]*AssignmentDetail, error)
}
