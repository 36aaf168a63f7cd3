package login

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"gymoffice/internal/domain/actor"
)

// Length constraints for credentials.
const (
	MaxEmailLength    = 255
	MinPasswordLength = 6
	MaxPasswordLength = 255
)

// Domain errors
var (
	ErrEmptyEmail       = errors.New("email cannot be empty")
	ErrInvalidEmail     = errors.New("email must contain '@'")
	ErrEmailTooLong     = errors.New("email cannot exceed 255 characters")
	ErrEmptyPassword    = errors.New("password cannot be empty")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrPasswordTooLong  = errors.New("password cannot exceed 255 characters")
	ErrWrongPassword    = errors.New("incorrect password")
	ErrInvalidActorType = errors.New("actor type must be one of: admin, receptionist, user")
)

// Login is the credential record: one email/password pair pointing at
// exactly one actor row. The core never mutates logins after
// provisioning.
type Login struct {
	ID           string
	Email        string
	PasswordHash string
	ActorType    string // role tag of the referenced actor
	ActorID      string
	CreatedAt    time.Time
}

// Validate checks if the Login has valid data.
// PRE: Login struct is populated
// POST: Returns nil if valid, error otherwise
func (l *Login) Validate() error {
	if strings.TrimSpace(l.Email) == "" {
		return ErrEmptyEmail
	}
	if len(l.Email) > MaxEmailLength {
		return ErrEmailTooLong
	}
	if !strings.Contains(l.Email, "@") {
		return ErrInvalidEmail
	}
	if !actor.IsValidRole(l.ActorType) {
		return ErrInvalidActorType
	}
	if l.ActorID == "" {
		return errors.New("login must reference an actor")
	}
	return nil
}

// ValidatePassword checks plaintext password constraints for login input.
// PRE: none
// POST: Returns nil if the plaintext satisfies the length rules
func ValidatePassword(plaintext string) error {
	if plaintext == "" {
		return ErrEmptyPassword
	}
	if len(plaintext) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(plaintext) > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}

// SetPassword hashes and stores a password using bcrypt with cost 12.
// PRE: plaintext satisfies ValidatePassword
// POST: PasswordHash is set to bcrypt hash
func (l *Login) SetPassword(plaintext string) error {
	if err := ValidatePassword(plaintext); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), 12)
	if err != nil {
		return err
	}
	l.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
// bcrypt's comparison is constant-time.
// PRE: PasswordHash is set
// INVARIANT: Login fields are not mutated
func (l *Login) CheckPassword(plaintext string) error {
	if l.PasswordHash == "" {
		return ErrWrongPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(l.PasswordHash), []byte(plaintext)); err != nil {
		return ErrWrongPassword
	}
	return nil
}
