package membership

import (
	"errors"
	"time"
)

// Membership type constants
const (
	TypeMonthly   = "Monthly"
	TypeDaily     = "Daily"
	TypeQuarterly = "Quarterly"
	TypeAnnual    = "Annual"
)

// ValidTypes contains all valid membership types.
var ValidTypes = []string{TypeMonthly, TypeDaily, TypeQuarterly, TypeAnnual}

// Domain errors
var (
	ErrInvalidType     = errors.New("type must be one of: Monthly, Daily, Quarterly, Annual")
	ErrNegativeAmount  = errors.New("amount must be zero or greater")
	ErrInvalidDiscount = errors.New("discount must be between 0 and 100")
	ErrInvalidDates    = errors.New("finish date cannot be before start date")
	ErrMissingUser     = errors.New("membership must reference a user")
)

// Membership belongs to exactly one user and defines what they pay for.
type Membership struct {
	ID         string
	UserID     string
	Type       string
	Amount     float64
	Discount   float64 // percent, 0-100
	StartDate  string  // YYYY-MM-DD
	FinishDate string  // YYYY-MM-DD, >= StartDate
}

// Validate checks if the Membership has valid data.
// PRE: Membership struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: FinishDate >= StartDate, Discount in [0,100]
func (m *Membership) Validate() error {
	if !isValidType(m.Type) {
		return ErrInvalidType
	}
	if m.Amount < 0 {
		return ErrNegativeAmount
	}
	if m.Discount < 0 || m.Discount > 100 {
		return ErrInvalidDiscount
	}
	start, err := time.Parse("2006-01-02", m.StartDate)
	if err != nil {
		return errors.New("start date must be a valid date (YYYY-MM-DD)")
	}
	finish, err := time.Parse("2006-01-02", m.FinishDate)
	if err != nil {
		return errors.New("finish date must be a valid date (YYYY-MM-DD)")
	}
	if finish.Before(start) {
		return ErrInvalidDates
	}
	if m.UserID == "" {
		return ErrMissingUser
	}
	return nil
}

func isValidType(t string) bool {
	for _, v := range ValidTypes {
		if t == v {
			return true
		}
	}
	return false
}
