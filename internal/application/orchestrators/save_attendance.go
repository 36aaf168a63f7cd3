package orchestrators

import (
	"context"
	"errors"
	"time"

	"gymoffice/internal/domain/attendance"
	"gymoffice/internal/domain/coach"

	"github.com/google/uuid"
)

// UserAttendanceStore defines the interface for user attendance persistence.
type UserAttendanceStore interface {
	GetByID(ctx context.Context, id string) (attendance.UserAttendance, error)
	Save(ctx context.Context, a attendance.UserAttendance) error
	Delete(ctx context.Context, id string) error
}

// CoachAttendanceStore defines the interface for coach attendance persistence.
type CoachAttendanceStore interface {
	GetByID(ctx context.Context, id string) (attendance.CoachAttendance, error)
	Save(ctx context.Context, a attendance.CoachAttendance) error
	Delete(ctx context.Context, id string) error
}

// CoachStore defines the interface for coach lookups.
type CoachStore interface {
	GetByID(ctx context.Context, id string) (coach.Coach, error)
}

// SaveUserAttendanceInput carries input for the user attendance orchestrator.
type SaveUserAttendanceInput struct {
	ID       string
	UserID   string
	Date     string
	CheckIn  string
	CheckOut string
}

// SaveUserAttendanceDeps holds dependencies for SaveUserAttendance.
type SaveUserAttendanceDeps struct {
	AttendanceStore UserAttendanceStore
	UserStore       UserStore
}

var (
	ErrAttendanceNotInGym = errors.New("the attendance record does not belong to this gym")
	ErrCoachNotInGym      = errors.New("the coach does not belong to this gym")
)

// ExecuteSaveUserAttendance records a gym user's attendance.
// PRE: gymID is the acting staff member's gym
// POST: Record persisted with a generated id on create
// INVARIANT: The referenced user must belong to gymID
func ExecuteSaveUserAttendance(ctx context.Context, input SaveUserAttendanceInput, gymID string, deps SaveUserAttendanceDeps) (attendance.UserAttendance, error) {
	owner, err := deps.UserStore.GetByID(ctx, input.UserID)
	if err != nil {
		return attendance.UserAttendance{}, err
	}
	if owner.GymID != gymID {
		return attendance.UserAttendance{}, ErrUserNotInGym
	}

	a := attendance.UserAttendance{
		ID:       input.ID,
		UserID:   input.UserID,
		Date:     input.Date,
		CheckIn:  input.CheckIn,
		CheckOut: input.CheckOut,
	}
	if a.ID == "" {
		a.ID = uuid.New().String()
	} else {
		existing, err := deps.AttendanceStore.GetByID(ctx, a.ID)
		if err != nil {
			return attendance.UserAttendance{}, err
		}
		// The targeted record itself must belong to the gym, not just
		// the user the update points at.
		prev, err := deps.UserStore.GetByID(ctx, existing.UserID)
		if err != nil {
			return attendance.UserAttendance{}, err
		}
		if prev.GymID != gymID {
			return attendance.UserAttendance{}, ErrAttendanceNotInGym
		}
	}
	if err := a.Validate(); err != nil {
		return attendance.UserAttendance{}, err
	}

	if err := deps.AttendanceStore.Save(ctx, a); err != nil {
		return attendance.UserAttendance{}, err
	}
	return a, nil
}

// CheckInUser records an open attendance entry for a gym user at the
// current time.
// PRE: gymID is the acting staff member's gym
// POST: Open record persisted with today's date and the current time
func CheckInUser(ctx context.Context, userID, gymID string, now time.Time, deps SaveUserAttendanceDeps) (attendance.UserAttendance, error) {
	return ExecuteSaveUserAttendance(ctx, SaveUserAttendanceInput{
		UserID:  userID,
		Date:    now.Format("2006-01-02"),
		CheckIn: now.Format("15:04"),
	}, gymID, deps)
}

// CheckOutUser closes an open attendance entry.
// PRE: The record exists and belongs to gymID
// POST: CheckOut set; ErrAlreadyCheckedOut if the record was closed
func CheckOutUser(ctx context.Context, attendanceID, gymID string, now time.Time, deps SaveUserAttendanceDeps) (attendance.UserAttendance, error) {
	a, err := deps.AttendanceStore.GetByID(ctx, attendanceID)
	if err != nil {
		return attendance.UserAttendance{}, err
	}
	owner, err := deps.UserStore.GetByID(ctx, a.UserID)
	if err != nil {
		return attendance.UserAttendance{}, err
	}
	if owner.GymID != gymID {
		return attendance.UserAttendance{}, ErrAttendanceNotInGym
	}

	if err := a.Finish(now.Format("15:04")); err != nil {
		return attendance.UserAttendance{}, err
	}
	if err := deps.AttendanceStore.Save(ctx, a); err != nil {
		return attendance.UserAttendance{}, err
	}
	return a, nil
}

// DeleteUserAttendanceDeps holds dependencies for DeleteUserAttendance.
type DeleteUserAttendanceDeps struct {
	AttendanceStore UserAttendanceStore
	UserStore       UserStore
}

// ExecuteDeleteUserAttendance removes an attendance record after checking
// gym ownership.
func ExecuteDeleteUserAttendance(ctx context.Context, id, gymID string, deps DeleteUserAttendanceDeps) error {
	a, err := deps.AttendanceStore.GetByID(ctx, id)
	if err != nil {
		return err
	}
	owner, err := deps.UserStore.GetByID(ctx, a.UserID)
	if err != nil {
		return err
	}
	if owner.GymID != gymID {
		return ErrAttendanceNotInGym
	}
	return deps.AttendanceStore.Delete(ctx, id)
}

// SaveCoachAttendanceInput carries input for the coach attendance orchestrator.
type SaveCoachAttendanceInput struct {
	ID       string
	CoachID  string
	Date     string
	CheckIn  string
	CheckOut string
}

// SaveCoachAttendanceDeps holds dependencies for SaveCoachAttendance.
type SaveCoachAttendanceDeps struct {
	AttendanceStore CoachAttendanceStore
	CoachStore      CoachStore
}

// ExecuteSaveCoachAttendance records a coach's attendance.
// PRE: gymID is the acting staff member's gym
// POST: Record persisted with a generated id on create
// INVARIANT: The referenced coach must belong to gymID
func ExecuteSaveCoachAttendance(ctx context.Context, input SaveCoachAttendanceInput, gymID string, deps SaveCoachAttendanceDeps) (attendance.CoachAttendance, error) {
	c, err := deps.CoachStore.GetByID(ctx, input.CoachID)
	if err != nil {
		return attendance.CoachAttendance{}, err
	}
	if c.GymID != gymID {
		return attendance.CoachAttendance{}, ErrCoachNotInGym
	}

	a := attendance.CoachAttendance{
		ID:       input.ID,
		CoachID:  input.CoachID,
		Date:     input.Date,
		CheckIn:  input.CheckIn,
		CheckOut: input.CheckOut,
	}
	if a.ID == "" {
		a.ID = uuid.New().String()
	} else {
		existing, err := deps.AttendanceStore.GetByID(ctx, a.ID)
		if err != nil {
			return attendance.CoachAttendance{}, err
		}
		// The targeted record itself must belong to the gym, not just
		// the coach the update points at.
		prev, err := deps.CoachStore.GetByID(ctx, existing.CoachID)
		if err != nil {
			return attendance.CoachAttendance{}, err
		}
		if prev.GymID != gymID {
			return attendance.CoachAttendance{}, ErrAttendanceNotInGym
		}
	}
	if err := a.Validate(); err != nil {
		return attendance.CoachAttendance{}, err
	}

	if err := deps.AttendanceStore.Save(ctx, a); err != nil {
		return attendance.CoachAttendance{}, err
	}
	return a, nil
}

// DeleteCoachAttendanceDeps holds dependencies for DeleteCoachAttendance.
type DeleteCoachAttendanceDeps struct {
	AttendanceStore CoachAttendanceStore
	CoachStore      CoachStore
}

// ExecuteDeleteCoachAttendance removes a coach attendance record after
// checking gym ownership.
func ExecuteDeleteCoachAttendance(ctx context.Context, id, gymID string, deps DeleteCoachAttendanceDeps) error {
	a, err := deps.AttendanceStore.GetByID(ctx, id)
	if err != nil {
		return err
	}
	c, err := deps.CoachStore.GetByID(ctx, a.CoachID)
	if err != nil {
		return err
	}
	if c.GymID != gymID {
		return ErrAttendanceNotInGym
	}
	return deps.AttendanceStore.Delete(ctx, id)
}
