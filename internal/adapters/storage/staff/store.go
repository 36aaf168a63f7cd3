package staff

import (
	"context"
	"errors"

	"gymoffice/internal/domain/actor"
)

// ErrNotFound is returned when a staff member does not exist.
var ErrNotFound = errors.New("staff member not found")

// Store persists gym staff (admins and receptionists).
type Store interface {
	SaveAdmin(ctx context.Context, a actor.Actor) error
	SaveReceptionist(ctx context.Context, a actor.Actor) error
	GetAdmin(ctx context.Context, id string) (actor.Actor, error)
	GetReceptionist(ctx context.Context, id string) (actor.Actor, error)
}
