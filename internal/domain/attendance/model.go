package attendance

import (
	"errors"
	"time"
)

// Domain errors
var (
	ErrInvalidDate       = errors.New("date must be a valid date (YYYY-MM-DD)")
	ErrInvalidCheckIn    = errors.New("check-in must be a valid time (HH:MM)")
	ErrInvalidCheckOut   = errors.New("check-out must be a valid time (HH:MM)")
	ErrCheckOutBeforeIn  = errors.New("check-out cannot be before check-in")
	ErrMissingUser       = errors.New("attendance must reference a user")
	ErrMissingCoach      = errors.New("attendance must reference a coach")
	ErrCheckOutRequired  = errors.New("check-out is required")
	ErrAlreadyCheckedOut = errors.New("attendance is already finished")
)

// UserAttendance is one gym visit by a user: a date, a check-in time and
// an optional check-out time once they leave.
type UserAttendance struct {
	ID       string
	UserID   string
	Date     string // YYYY-MM-DD
	CheckIn  string // HH:MM
	CheckOut string // HH:MM, empty until the visit is finished
}

// CoachAttendance mirrors UserAttendance for coaching staff.
type CoachAttendance struct {
	ID       string
	CoachID  string
	Date     string
	CheckIn  string
	CheckOut string
}

// Validate checks if the UserAttendance has valid data.
// PRE: UserAttendance struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: CheckOut, when present, is not before CheckIn
func (a *UserAttendance) Validate() error {
	if a.UserID == "" {
		return ErrMissingUser
	}
	return validateTimes(a.Date, a.CheckIn, a.CheckOut)
}

// Finish records the check-out time on an open attendance.
// PRE: CheckOut is empty
// POST: CheckOut is set; error if before CheckIn
func (a *UserAttendance) Finish(checkOut string) error {
	if a.CheckOut != "" {
		return ErrAlreadyCheckedOut
	}
	if checkOut == "" {
		return ErrCheckOutRequired
	}
	if err := validateTimes(a.Date, a.CheckIn, checkOut); err != nil {
		return err
	}
	a.CheckOut = checkOut
	return nil
}

// Validate checks if the CoachAttendance has valid data.
// PRE: CoachAttendance struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (a *CoachAttendance) Validate() error {
	if a.CoachID == "" {
		return ErrMissingCoach
	}
	return validateTimes(a.Date, a.CheckIn, a.CheckOut)
}

// Finish records the check-out time on an open coach attendance.
// PRE: CheckOut is empty
// POST: CheckOut is set; error if before CheckIn
func (a *CoachAttendance) Finish(checkOut string) error {
	if a.CheckOut != "" {
		return ErrAlreadyCheckedOut
	}
	if checkOut == "" {
		return ErrCheckOutRequired
	}
	if err := validateTimes(a.Date, a.CheckIn, checkOut); err != nil {
		return err
	}
	a.CheckOut = checkOut
	return nil
}

func validateTimes(date, checkIn, checkOut string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return ErrInvalidDate
	}
	in, err := time.Parse("15:04", checkIn)
	if err != nil {
		return ErrInvalidCheckIn
	}
	if checkOut != "" {
		out, err := time.Parse("15:04", checkOut)
		if err != nil {
			return ErrInvalidCheckOut
		}
		if out.Before(in) {
			return ErrCheckOutBeforeIn
		}
	}
	return nil
}
