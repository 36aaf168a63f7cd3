package gym

import (
	"errors"
	"strings"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength    = 100
	MaxAddressLength = 255
)

// Domain errors
var (
	ErrEmptyName = errors.New("gym name cannot be empty")
)

// Gym is the tenant: every user, membership, payment and attendance
// record belongs to exactly one gym.
type Gym struct {
	ID      string
	Name    string
	Address string
	Welcome string // markdown shown on the dashboards
}

// Validate checks if the Gym has valid data.
// PRE: Gym struct is populated
// POST: Returns nil if valid, error otherwise
func (g *Gym) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyName
	}
	if len(g.Name) > MaxNameLength {
		return errors.New("gym name cannot exceed 100 characters")
	}
	if len(g.Address) > MaxAddressLength {
		return errors.New("gym address cannot exceed 255 characters")
	}
	return nil
}
