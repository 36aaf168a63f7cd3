package payment

import (
	"errors"
	"strings"
	"time"
)

// MaxMethodLength bounds the free-text payment method.
const MaxMethodLength = 255

// Domain errors
var (
	ErrNegativeAmount    = errors.New("amount must be zero or greater")
	ErrEmptyMethod       = errors.New("payment method cannot be empty")
	ErrInvalidDate       = errors.New("date must be a valid date (YYYY-MM-DD)")
	ErrMissingUser       = errors.New("payment must reference a user")
	ErrMissingMembership = errors.New("payment must reference a membership")
)

// Payment records money received for a membership.
type Payment struct {
	ID           string
	UserID       string
	MembershipID string
	Date         string // YYYY-MM-DD, the business date of the payment
	Amount       float64
	Method       string // free text: cash, card, transfer, ...
	CreatedAt    time.Time
}

// Validate checks if the Payment has valid data.
// PRE: Payment struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Amount >= 0
func (p *Payment) Validate() error {
	if _, err := time.Parse("2006-01-02", p.Date); err != nil {
		return ErrInvalidDate
	}
	if p.Amount < 0 {
		return ErrNegativeAmount
	}
	if strings.TrimSpace(p.Method) == "" {
		return ErrEmptyMethod
	}
	if len(p.Method) > MaxMethodLength {
		return errors.New("payment method cannot exceed 255 characters")
	}
	if p.UserID == "" {
		return ErrMissingUser
	}
	if p.MembershipID == "" {
		return ErrMissingMembership
	}
	return nil
}
