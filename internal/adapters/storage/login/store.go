package login

import (
	"context"
	"errors"

	"gymoffice/internal/domain/actor"
	domain "gymoffice/internal/domain/login"
)

// Store errors. ErrActorNotFound marks a dangling actor reference: the
// login row exists but the row it points at is gone.
var (
	ErrNotFound      = errors.New("login not found")
	ErrActorNotFound = errors.New("actor not found")
)

// Store persists Login state and resolves the polymorphic actor.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Login, error)
	GetByEmail(ctx context.Context, email string) (domain.Login, error)
	Save(ctx context.Context, value domain.Login) error
	Delete(ctx context.Context, id string) error
	// Resolve returns the actor a login points at: one lookup plus a
	// branch on the login's actor type.
	Resolve(ctx context.Context, l domain.Login) (actor.Actor, error)
}
