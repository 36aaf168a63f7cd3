package coach

import (
	"errors"
	"strings"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength  = 255
	MaxPhoneLength = 20
)

// Domain errors
var (
	ErrEmptyName    = errors.New("coach name cannot be empty")
	ErrInvalidEmail = errors.New("coach email must be valid")
	ErrMissingGym   = errors.New("coach must belong to a gym")
)

// Coach is a member of the coaching staff; their attendance is tracked
// separately from gym users.
type Coach struct {
	ID          string
	GymID       string
	Name        string
	Email       string
	PhoneNumber string
	Specialty   string
}

// Validate checks if the Coach has valid data.
// PRE: Coach struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (c *Coach) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if len(c.Name) > MaxNameLength {
		return errors.New("coach name cannot exceed 255 characters")
	}
	if !strings.Contains(c.Email, "@") {
		return ErrInvalidEmail
	}
	if len(c.PhoneNumber) > MaxPhoneLength {
		return errors.New("phone number cannot exceed 20 characters")
	}
	if c.GymID == "" {
		return ErrMissingGym
	}
	return nil
}
