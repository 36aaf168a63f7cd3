package projections

import (
	"context"
	"testing"
	"time"

	"gymoffice/internal/domain/gym"
)

type fakeDashboardPaymentStore struct {
	sums    map[string]float64 // keyed by "from|to"
	monthly map[int]float64
}

func (f *fakeDashboardPaymentStore) SumInRange(_ context.Context, gymID, from, to string) (float64, error) {
	return f.sums[from+"|"+to], nil
}

func (f *fakeDashboardPaymentStore) MonthlyTotals(_ context.Context, gymID string, year int) (map[int]float64, error) {
	return f.monthly, nil
}

type fakeDashboardGymStore struct {
	gym gym.Gym
}

func (f *fakeDashboardGymStore) GetByID(_ context.Context, id string) (gym.Gym, error) {
	return f.gym, nil
}

// TestQueryGetDashboard tests the aggregate including zero-filled month buckets.
func TestQueryGetDashboard(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)
	payments := &fakeDashboardPaymentStore{
		sums: map[string]float64{
			"2026-08-31|2026-08-31": 90,
			"2026-08-01|2026-08-31": 450,
			"2026-01-01|2026-08-31": 3200,
		},
		// Only three months had payments; the rest must come back zero.
		monthly: map[int]float64{1: 500, 3: 700, 8: 450},
	}
	gyms := &fakeDashboardGymStore{gym: gym.Gym{
		ID:      "gym-1",
		Name:    "Iron Temple Gym",
		Welcome: "## Welcome",
	}}

	result, err := QueryGetDashboard(context.Background(), GetDashboardQuery{GymID: "gym-1"},
		GetDashboardDeps{
			UserStore:    statsFixture(),
			PaymentStore: payments,
			GymStore:     gyms,
		}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.GymName != "Iron Temple Gym" {
		t.Errorf("GymName = %q", result.GymName)
	}
	if result.Welcome != "## Welcome" {
		t.Errorf("Welcome = %q", result.Welcome)
	}
	if result.TotalUsers != 5 || result.ActiveUsers != 3 || result.InactiveUsers != 2 {
		t.Errorf("user counts = %d/%d/%d, want 3/2/5 active/inactive/total",
			result.ActiveUsers, result.InactiveUsers, result.TotalUsers)
	}
	if result.PaidToday != 90 {
		t.Errorf("PaidToday = %v, want 90", result.PaidToday)
	}
	if result.PaidThisMonth != 450 {
		t.Errorf("PaidThisMonth = %v, want 450", result.PaidThisMonth)
	}
	if result.PaidThisYear != 3200 {
		t.Errorf("PaidThisYear = %v, want 3200", result.PaidThisYear)
	}

	want := [12]float64{500, 0, 700, 0, 0, 0, 0, 450, 0, 0, 0, 0}
	if result.PaymentsByMonth != want {
		t.Errorf("PaymentsByMonth = %v, want %v", result.PaymentsByMonth, want)
	}
}

// TestQueryGetDashboard_OutOfRangeMonths tests bogus month keys are dropped.
func TestQueryGetDashboard_OutOfRangeMonths(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)
	payments := &fakeDashboardPaymentStore{
		sums:    map[string]float64{},
		monthly: map[int]float64{0: 99, 13: 99, 5: 120},
	}
	gyms := &fakeDashboardGymStore{gym: gym.Gym{ID: "gym-1", Name: "Iron Temple Gym"}}

	result, err := QueryGetDashboard(context.Background(), GetDashboardQuery{GymID: "gym-1"},
		GetDashboardDeps{
			UserStore:    statsFixture(),
			PaymentStore: payments,
			GymStore:     gyms,
		}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := [12]float64{0, 0, 0, 0, 120, 0, 0, 0, 0, 0, 0, 0}
	if result.PaymentsByMonth != want {
		t.Errorf("PaymentsByMonth = %v, want %v", result.PaymentsByMonth, want)
	}
}
