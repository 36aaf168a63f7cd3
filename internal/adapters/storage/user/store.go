package user

import (
	"context"
	"time"

	domain "gymoffice/internal/domain/user"
)

// Store persists User state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	Save(ctx context.Context, value domain.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.User, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
	ListByGym(ctx context.Context, gymID string) ([]domain.User, error)
	CountByState(ctx context.Context, gymID, state string, from, to time.Time) (int, error)
	CountsByMonth(ctx context.Context, gymID string) ([]MonthCount, error)
}

// ListFilter carries filtering parameters for List operations.
// GymID is always set by callers: list views never cross tenants.
type ListFilter struct {
	Limit      int
	Offset     int
	GymID      string
	State      string
	Gender     string
	IDLike     string
	Search     string
	SearchDate string // YYYY-MM-DD; matched against birth_date in the search OR group
}

// MonthCount is one bucket of the users-by-month series.
type MonthCount struct {
	Month string // YYYY-MM
	Total int
}
