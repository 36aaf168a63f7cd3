package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gymoffice/internal/domain/actor"
	"gymoffice/internal/domain/coach"
	"gymoffice/internal/domain/gym"
	"gymoffice/internal/domain/login"
	"gymoffice/internal/domain/user"

	"github.com/google/uuid"
)

// SeedDeps holds stores needed for initial seeding.
type SeedDeps struct {
	GymStore   seedGymStore
	LoginStore seedLoginStore
	StaffStore seedStaffStore
	UserStore  UserStore
	CoachStore seedCoachStore
}

type seedGymStore interface {
	Save(ctx context.Context, g gym.Gym) error
	List(ctx context.Context) ([]gym.Gym, error)
}

type seedLoginStore interface {
	GetByEmail(ctx context.Context, email string) (login.Login, error)
	Save(ctx context.Context, l login.Login) error
}

type seedCoachStore interface {
	Save(ctx context.Context, c coach.Coach) error
	ListByGym(ctx context.Context, gymID string) ([]coach.Coach, error)
}

type seedStaffStore interface {
	SaveAdmin(ctx context.Context, a actor.Actor) error
	SaveReceptionist(ctx context.Context, a actor.Actor) error
}

// SeedInput carries the initial admin credentials and gym identity.
type SeedInput struct {
	GymName       string
	AdminEmail    string
	AdminPassword string
}

// ExecuteSeed creates the initial gym, admin and receptionist accounts.
// It is idempotent: it does nothing when a gym already exists.
// PRE: Database is initialized
// POST: One gym, one admin login and one receptionist login exist
func ExecuteSeed(ctx context.Context, input SeedInput, deps SeedDeps) error {
	gyms, err := deps.GymStore.List(ctx)
	if err != nil {
		return fmt.Errorf("seed: list gyms: %w", err)
	}
	if len(gyms) > 0 {
		return nil
	}

	g := gym.Gym{
		ID:      uuid.New().String(),
		Name:    input.GymName,
		Welcome: "## Welcome\n\nUse the menu to manage users, memberships, payments and attendance.",
	}
	if err := g.Validate(); err != nil {
		return fmt.Errorf("seed: gym: %w", err)
	}
	if err := deps.GymStore.Save(ctx, g); err != nil {
		return fmt.Errorf("seed: save gym: %w", err)
	}

	if err := seedStaff(ctx, deps, g.ID, actor.RoleAdmin, "Administrator", input.AdminEmail, input.AdminPassword); err != nil {
		return err
	}

	recEmail := "reception@" + g.ID[:8] + ".local"
	if err := seedStaff(ctx, deps, g.ID, actor.RoleReceptionist, "Reception", recEmail, uuid.New().String()); err != nil {
		return err
	}

	slog.Info("seed_event", "event", "seeded", "gym_id", g.ID, "admin_email", input.AdminEmail)
	return nil
}

func seedStaff(ctx context.Context, deps SeedDeps, gymID, role, name, email, password string) error {
	if _, err := deps.LoginStore.GetByEmail(ctx, email); err == nil {
		return nil
	}

	a := actor.Actor{
		ID:    uuid.New().String(),
		Role:  role,
		Name:  name,
		Email: email,
		GymID: gymID,
	}
	switch role {
	case actor.RoleAdmin:
		if err := deps.StaffStore.SaveAdmin(ctx, a); err != nil {
			return fmt.Errorf("seed %s: save: %w", role, err)
		}
	case actor.RoleReceptionist:
		if err := deps.StaffStore.SaveReceptionist(ctx, a); err != nil {
			return fmt.Errorf("seed %s: save: %w", role, err)
		}
	default:
		return fmt.Errorf("seed: unknown role %q", role)
	}

	l := login.Login{
		ID:        uuid.New().String(),
		Email:     email,
		ActorType: role,
		ActorID:   a.ID,
		CreatedAt: time.Now().UTC(),
	}
	if err := l.SetPassword(password); err != nil {
		return fmt.Errorf("seed %s: set password: %w", role, err)
	}
	if err := deps.LoginStore.Save(ctx, l); err != nil {
		return fmt.Errorf("seed %s: save login: %w", role, err)
	}

	slog.Info("seed_event", "event", "staff_created", "email", email, "role", role)
	return nil
}

// ExecuteSeedDemoUsers creates a handful of demo gym users when none exist.
// It is idempotent: it skips users whose id already exists.
func ExecuteSeedDemoUsers(ctx context.Context, gymID string, deps SeedDeps) error {
	demo := []user.User{
		{ID: "10234567", Name: "Ana Garcia", Gender: user.GenderFemale, BirthDate: "1994-03-12", PhoneNumber: "555-0101", Email: "ana@example.com", State: user.StateActive},
		{ID: "20345678", Name: "Luis Mendez", Gender: user.GenderMale, BirthDate: "1988-11-02", PhoneNumber: "555-0102", Email: "luis@example.com", State: user.StateActive},
		{ID: "30456789", Name: "Carla Ruiz", Gender: user.GenderFemale, BirthDate: "2001-07-25", PhoneNumber: "555-0103", Email: "carla@example.com", State: user.StateInactive},
	}
	for _, u := range demo {
		if _, err := deps.UserStore.GetByID(ctx, u.ID); err == nil {
			continue
		}
		u.GymID = gymID
		u.CreatedAt = time.Now().UTC()
		if err := deps.UserStore.Save(ctx, u); err != nil {
			return fmt.Errorf("seed demo user %s: %w", u.ID, err)
		}
	}
	return seedDemoCoaches(ctx, gymID, deps)
}

// seedDemoCoaches fills the coach roster the attendance-coaches page
// draws from. Skipped when the gym already has coaches.
func seedDemoCoaches(ctx context.Context, gymID string, deps SeedDeps) error {
	existing, err := deps.CoachStore.ListByGym(ctx, gymID)
	if err != nil {
		return fmt.Errorf("seed coaches: list: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	demo := []coach.Coach{
		{Name: "Marta Diaz", Email: "marta@example.com", PhoneNumber: "555-0201", Specialty: "Crossfit"},
		{Name: "Jorge Paredes", Email: "jorge@example.com", PhoneNumber: "555-0202", Specialty: "Weightlifting"},
	}
	for _, c := range demo {
		c.ID = uuid.New().String()
		c.GymID = gymID
		if err := c.Validate(); err != nil {
			return fmt.Errorf("seed coach %s: %w", c.Name, err)
		}
		if err := deps.CoachStore.Save(ctx, c); err != nil {
			return fmt.Errorf("seed coach %s: %w", c.Name, err)
		}
	}
	return nil
}
