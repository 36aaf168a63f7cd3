package projections

import (
	"context"
	"time"

	"gymoffice/internal/domain/gym"
)

// DashboardPaymentStore defines the payment store interface needed by the dashboard projection.
type DashboardPaymentStore interface {
	SumInRange(ctx context.Context, gymID, from, to string) (float64, error)
	MonthlyTotals(ctx context.Context, gymID string, year int) (map[int]float64, error)
}

// DashboardGymStore defines the gym store interface needed by the dashboard projection.
type DashboardGymStore interface {
	GetByID(ctx context.Context, id string) (gym.Gym, error)
}

// GetDashboardQuery carries input for the dashboard projection.
type GetDashboardQuery struct {
	GymID string
}

// GetDashboardDeps holds dependencies for the dashboard projection.
type GetDashboardDeps struct {
	UserStore    UserStatsStore
	PaymentStore DashboardPaymentStore
	GymStore     DashboardGymStore
}

// DashboardResult carries the output of the dashboard projection.
type DashboardResult struct {
	GymName     string
	Welcome     string // raw markdown, rendered by the caller

	// User counts across all registrations.
	ActiveUsers   int
	InactiveUsers int
	TotalUsers    int

	// Payment sums.
	PaidToday     float64
	PaidThisMonth float64
	PaidThisYear  float64

	// PaymentsByMonth always has twelve entries, January first.
	// Months with no payments hold zero.
	PaymentsByMonth [12]float64
}

// PaymentStatsResult carries the earnings block of the dashboard.
type PaymentStatsResult struct {
	PaidToday     float64
	PaidThisMonth float64
	PaidThisYear  float64

	// PaymentsByMonth always has twelve entries, January first.
	PaymentsByMonth [12]float64
}

// QueryGetPaymentStats sums payments over their business date: today,
// month to date, year to date, and per month of the current year.
// PRE: GymID identifies the acting staff member's gym
// POST: PaymentsByMonth covers the current calendar year
func QueryGetPaymentStats(ctx context.Context, gymID string, store DashboardPaymentStore, now time.Time) (PaymentStatsResult, error) {
	var result PaymentStatsResult
	var err error

	today := now.Format("2006-01-02")
	monthStart := now.Format("2006-01") + "-01"
	yearStart := now.Format("2006") + "-01-01"

	if result.PaidToday, err = store.SumInRange(ctx, gymID, today, today); err != nil {
		return PaymentStatsResult{}, err
	}
	if result.PaidThisMonth, err = store.SumInRange(ctx, gymID, monthStart, today); err != nil {
		return PaymentStatsResult{}, err
	}
	if result.PaidThisYear, err = store.SumInRange(ctx, gymID, yearStart, today); err != nil {
		return PaymentStatsResult{}, err
	}

	totals, err := store.MonthlyTotals(ctx, gymID, now.Year())
	if err != nil {
		return PaymentStatsResult{}, err
	}
	for month, sum := range totals {
		if month >= 1 && month <= 12 {
			result.PaymentsByMonth[month-1] = sum
		}
	}
	return result, nil
}

// QueryGetDashboard aggregates the staff dashboard for one gym.
// PRE: GymID identifies the acting staff member's gym
// POST: PaymentsByMonth covers the current calendar year
func QueryGetDashboard(ctx context.Context, query GetDashboardQuery, deps GetDashboardDeps, now time.Time) (DashboardResult, error) {
	var result DashboardResult

	g, err := deps.GymStore.GetByID(ctx, query.GymID)
	if err != nil {
		return DashboardResult{}, err
	}
	result.GymName = g.Name
	result.Welcome = g.Welcome

	stats, err := QueryGetUserStats(ctx, GetUserStatsQuery{GymID: query.GymID, Period: PeriodAll},
		GetUserStatsDeps{UserStore: deps.UserStore}, now)
	if err != nil {
		return DashboardResult{}, err
	}
	result.ActiveUsers = stats.Active
	result.InactiveUsers = stats.Inactive
	result.TotalUsers = stats.Total

	payments, err := QueryGetPaymentStats(ctx, query.GymID, deps.PaymentStore, now)
	if err != nil {
		return DashboardResult{}, err
	}
	result.PaidToday = payments.PaidToday
	result.PaidThisMonth = payments.PaidThisMonth
	result.PaidThisYear = payments.PaidThisYear
	result.PaymentsByMonth = payments.PaymentsByMonth

	return result, nil
}
