package projections

import (
	"context"
	"errors"
	"time"

	userstore "gymoffice/internal/adapters/storage/user"
	"gymoffice/internal/domain/user"
)

// Period selectors for user counts.
const (
	PeriodAll          = "all"
	PeriodToday        = "today"
	PeriodThisMonth    = "this_month"
	PeriodLastMonth    = "last_month"
	PeriodTwoMonthsAgo = "two_months_ago"
)

// ErrUnknownPeriod is returned for an unrecognised period selector.
var ErrUnknownPeriod = errors.New("unknown period")

// UserStatsStore defines the user store interface needed by the stats projection.
type UserStatsStore interface {
	CountByState(ctx context.Context, gymID, state string, from, to time.Time) (int, error)
	CountsByMonth(ctx context.Context, gymID string) ([]userstore.MonthCount, error)
}

// GetUserStatsQuery carries input for the user stats projection.
type GetUserStatsQuery struct {
	GymID  string
	Period string // one of the Period constants; empty means all
}

// GetUserStatsDeps holds dependencies for the user stats projection.
type GetUserStatsDeps struct {
	UserStore UserStatsStore
}

// UserStatsResult carries the output of the user stats projection.
type UserStatsResult struct {
	Period   string
	Active   int
	Inactive int
	Total    int
}

// QueryGetUserStats counts users by state, registered within the period.
// PRE: GymID identifies the acting staff member's gym
// POST: Total == Active + Inactive
func QueryGetUserStats(ctx context.Context, query GetUserStatsQuery, deps GetUserStatsDeps, now time.Time) (UserStatsResult, error) {
	from, to, err := periodWindow(query.Period, now)
	if err != nil {
		return UserStatsResult{}, err
	}

	active, err := deps.UserStore.CountByState(ctx, query.GymID, user.StateActive, from, to)
	if err != nil {
		return UserStatsResult{}, err
	}
	inactive, err := deps.UserStore.CountByState(ctx, query.GymID, user.StateInactive, from, to)
	if err != nil {
		return UserStatsResult{}, err
	}

	period := query.Period
	if period == "" {
		period = PeriodAll
	}
	return UserStatsResult{
		Period:   period,
		Active:   active,
		Inactive: inactive,
		Total:    active + inactive,
	}, nil
}

// UsersByMonthResult is the registrations-per-month series for charting.
type UsersByMonthResult struct {
	Months []userstore.MonthCount
}

// QueryGetUsersByMonth returns the number of users registered per month.
func QueryGetUsersByMonth(ctx context.Context, gymID string, deps GetUserStatsDeps) (UsersByMonthResult, error) {
	months, err := deps.UserStore.CountsByMonth(ctx, gymID)
	if err != nil {
		return UsersByMonthResult{}, err
	}
	return UsersByMonthResult{Months: months}, nil
}

// periodWindow maps a period selector to a [from, to) registration window.
// Zero times mean unbounded.
func periodWindow(period string, now time.Time) (time.Time, time.Time, error) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	switch period {
	case "", PeriodAll:
		return time.Time{}, time.Time{}, nil
	case PeriodToday:
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return dayStart, dayStart.AddDate(0, 0, 1), nil
	case PeriodThisMonth:
		return monthStart, monthStart.AddDate(0, 1, 0), nil
	case PeriodLastMonth:
		return monthStart.AddDate(0, -1, 0), monthStart, nil
	case PeriodTwoMonthsAgo:
		return monthStart.AddDate(0, -2, 0), monthStart.AddDate(0, -1, 0), nil
	}
	return time.Time{}, time.Time{}, ErrUnknownPeriod
}
