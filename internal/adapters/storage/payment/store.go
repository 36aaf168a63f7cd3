package payment

import (
	"context"

	domain "gymoffice/internal/domain/payment"
)

// Store persists Payment state. List and aggregate queries are always
// scoped to a gym through the owning user.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Payment, error)
	Save(ctx context.Context, value domain.Payment) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Payment, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
	DistinctMethods(ctx context.Context, gymID string) ([]string, error)
	// SumInRange totals payment amounts with date in [from, to].
	SumInRange(ctx context.Context, gymID, from, to string) (float64, error)
	// MonthlyTotals returns amount sums keyed by month number (1-12)
	// for the given year. Months without payments are absent.
	MonthlyTotals(ctx context.Context, gymID string, year int) (map[int]float64, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Limit        int
	Offset       int
	GymID        string
	IDLike       string
	UserID       string
	Method       string
	Date         string
	MembershipID string
	UserName     string
	Search       string
}
