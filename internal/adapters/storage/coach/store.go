package coach

import (
	"context"
	"errors"

	domain "gymoffice/internal/domain/coach"
)

// ErrNotFound is returned when a coach does not exist.
var ErrNotFound = errors.New("coach not found")

// Store persists coaches.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Coach, error)
	Save(ctx context.Context, value domain.Coach) error
	Delete(ctx context.Context, id string) error
	ListByGym(ctx context.Context, gymID string) ([]domain.Coach, error)
}
