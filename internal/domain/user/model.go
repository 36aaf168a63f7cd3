package user

import (
	"errors"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength  = 255
	MaxPhoneLength = 20
	MinIDDigits    = 5
	MaxIDDigits    = 20
)

// Business rule constants. State values are stored capitalized; filters
// compare case-insensitively because historical rows used both casings.
const (
	StateActive   = "Activo"
	StateInactive = "Inactivo"
	GenderMale    = "M"
	GenderFemale  = "F"
)

// Domain errors
var (
	ErrInvalidID     = errors.New("id must be numeric with 5 to 20 digits")
	ErrEmptyName     = errors.New("name cannot be empty")
	ErrInvalidGender = errors.New("gender must be 'M' or 'F'")
	ErrInvalidState  = errors.New("state must be 'Activo' or 'Inactivo'")
	ErrInvalidDate   = errors.New("birth date must be a valid date (YYYY-MM-DD)")
	ErrEmptyPhone    = errors.New("phone number cannot be empty")
	ErrInvalidEmail  = errors.New("email must be valid")
)

// User is a gym member. The ID is the member's document number, entered
// at the front desk, so it is user-supplied rather than generated.
type User struct {
	ID          string
	GymID       string
	Name        string
	Gender      string
	BirthDate   string // YYYY-MM-DD
	PhoneNumber string
	Email       string
	State       string
	CreatedAt   time.Time
}

// Validate checks if the User has valid data.
// PRE: User struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: ID is numeric, State is Activo or Inactivo
func (u *User) Validate() error {
	if !isNumericID(u.ID) {
		return ErrInvalidID
	}
	if strings.TrimSpace(u.Name) == "" {
		return ErrEmptyName
	}
	if len(u.Name) > MaxNameLength {
		return errors.New("name cannot exceed 255 characters")
	}
	if u.Gender != GenderMale && u.Gender != GenderFemale {
		return ErrInvalidGender
	}
	if _, err := time.Parse("2006-01-02", u.BirthDate); err != nil {
		return ErrInvalidDate
	}
	if strings.TrimSpace(u.PhoneNumber) == "" {
		return ErrEmptyPhone
	}
	if len(u.PhoneNumber) > MaxPhoneLength {
		return errors.New("phone number cannot exceed 20 characters")
	}
	if !strings.Contains(u.Email, "@") {
		return ErrInvalidEmail
	}
	if u.State != StateActive && u.State != StateInactive {
		return ErrInvalidState
	}
	if u.GymID == "" {
		return errors.New("user must belong to a gym")
	}
	return nil
}

// IsActive returns true if the user is currently active.
// INVARIANT: State field is not mutated
func (u *User) IsActive() bool {
	return strings.EqualFold(u.State, StateActive)
}

// TitleName normalizes a name the way the front desk expects it:
// lowercased, then each word capitalized.
func TitleName(name string) string {
	words := strings.Fields(strings.ToLower(name))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func isNumericID(id string) bool {
	if len(id) < MinIDDigits || len(id) > MaxIDDigits {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
