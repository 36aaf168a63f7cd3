package membership

import (
	"context"

	domain "gymoffice/internal/domain/membership"
)

// Store persists Membership state. List queries are always scoped to a
// gym through the owning user.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Membership, error)
	Save(ctx context.Context, value domain.Membership) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Membership, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
	DistinctTypes(ctx context.Context, gymID string) ([]string, error)
	ExistsInGym(ctx context.Context, id, gymID string) (bool, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Limit      int
	Offset     int
	GymID      string
	IDLike     string
	UserID     string
	Type       string
	StartDate  string
	FinishDate string
	UserName   string
	Search     string
}
