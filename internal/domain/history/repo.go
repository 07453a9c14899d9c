package history

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Insert(ctx context.Context, e *Entry) error
	List(ctx context.Context, patientID *uuid.UUID, limit int) ([]*Entry, error)
}
