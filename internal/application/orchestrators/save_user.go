package orchestrators

import (
	"context"
	"errors"
	"time"

	"gymoffice/internal/domain/user"
)

// UserStore defines the interface for gym user persistence.
type UserStore interface {
	GetByID(ctx context.Context, id string) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
	Save(ctx context.Context, u user.User) error
	Delete(ctx context.Context, id string) error
}

// SaveUserInput carries input for the save user orchestrator.
type SaveUserInput struct {
	ID          string
	GymID       string
	Name        string
	Gender      string
	BirthDate   string
	PhoneNumber string
	Email       string
	State       string
	Update      bool
}

// SaveUserDeps holds dependencies for SaveUser.
type SaveUserDeps struct {
	UserStore UserStore
	Now       func() time.Time
}

var (
	ErrUserNotInGym    = errors.New("the user does not belong to this gym")
	ErrUserExists      = errors.New("a user with this id already exists")
	ErrEmailRegistered = errors.New("a user with this email already exists")
)

// ExecuteSaveUser creates or updates a gym user within the actor's gym.
// PRE: GymID is the acting staff member's gym
// POST: User persisted; name normalized to title case
// INVARIANT: Updates never move a user across gyms
func ExecuteSaveUser(ctx context.Context, input SaveUserInput, deps SaveUserDeps) (user.User, error) {
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}

	u := user.User{
		ID:          input.ID,
		GymID:       input.GymID,
		Name:        user.TitleName(input.Name),
		Gender:      input.Gender,
		BirthDate:   input.BirthDate,
		PhoneNumber: input.PhoneNumber,
		Email:       input.Email,
		State:       input.State,
	}
	if u.State == "" {
		u.State = user.StateActive
	}
	if err := u.Validate(); err != nil {
		return user.User{}, err
	}

	existing, err := deps.UserStore.GetByID(ctx, input.ID)
	if input.Update {
		if err != nil {
			return user.User{}, err
		}
		if existing.GymID != input.GymID {
			return user.User{}, ErrUserNotInGym
		}
		u.CreatedAt = existing.CreatedAt
	} else {
		if err == nil {
			return user.User{}, ErrUserExists
		}
		if other, err := deps.UserStore.GetByEmail(ctx, input.Email); err == nil && other.ID != input.ID {
			return user.User{}, ErrEmailRegistered
		}
		u.CreatedAt = now().UTC()
	}

	if err := deps.UserStore.Save(ctx, u); err != nil {
		return user.User{}, err
	}
	return u, nil
}

// DeleteUserDeps holds dependencies for DeleteUser.
type DeleteUserDeps struct {
	UserStore UserStore
}

// ExecuteDeleteUser removes a gym user after checking gym ownership.
// PRE: gymID is the acting staff member's gym
// POST: User removed, or ErrUserNotInGym when owned by another gym
func ExecuteDeleteUser(ctx context.Context, id, gymID string, deps DeleteUserDeps) error {
	u, err := deps.UserStore.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u.GymID != gymID {
		return ErrUserNotInGym
	}
	return deps.UserStore.Delete(ctx, id)
}
