package orchestrators

import (
	"context"
	"errors"

	"gymoffice/internal/domain/membership"

	"github.com/google/uuid"
)

// MembershipStore defines the interface for membership persistence.
type MembershipStore interface {
	GetByID(ctx context.Context, id string) (membership.Membership, error)
	Save(ctx context.Context, m membership.Membership) error
	Delete(ctx context.Context, id string) error
	ExistsInGym(ctx context.Context, id, gymID string) (bool, error)
}

// SaveMembershipInput carries input for the save membership orchestrator.
type SaveMembershipInput struct {
	ID         string
	UserID     string
	Type       string
	Amount     float64
	Discount   float64
	StartDate  string
	FinishDate string
}

// SaveMembershipDeps holds dependencies for SaveMembership.
type SaveMembershipDeps struct {
	MembershipStore MembershipStore
	UserStore       UserStore
}

var ErrMembershipNotInGym = errors.New("the membership does not belong to this gym")

// ExecuteSaveMembership creates or updates a membership for a user in the
// actor's gym.
// PRE: gymID is the acting staff member's gym
// POST: Membership persisted with a generated id on create
// INVARIANT: The referenced user must belong to gymID
func ExecuteSaveMembership(ctx context.Context, input SaveMembershipInput, gymID string, deps SaveMembershipDeps) (membership.Membership, error) {
	owner, err := deps.UserStore.GetByID(ctx, input.UserID)
	if err != nil {
		return membership.Membership{}, err
	}
	if owner.GymID != gymID {
		return membership.Membership{}, ErrUserNotInGym
	}

	m := membership.Membership{
		ID:         input.ID,
		UserID:     input.UserID,
		Type:       input.Type,
		Amount:     input.Amount,
		Discount:   input.Discount,
		StartDate:  input.StartDate,
		FinishDate: input.FinishDate,
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	} else {
		existing, err := deps.MembershipStore.GetByID(ctx, m.ID)
		if err == nil {
			inGym, err := deps.MembershipStore.ExistsInGym(ctx, existing.ID, gymID)
			if err != nil {
				return membership.Membership{}, err
			}
			if !inGym {
				return membership.Membership{}, ErrMembershipNotInGym
			}
		}
	}
	if err := m.Validate(); err != nil {
		return membership.Membership{}, err
	}

	if err := deps.MembershipStore.Save(ctx, m); err != nil {
		return membership.Membership{}, err
	}
	return m, nil
}

// DeleteMembershipDeps holds dependencies for DeleteMembership.
type DeleteMembershipDeps struct {
	MembershipStore MembershipStore
}

// ExecuteDeleteMembership removes a membership after checking gym ownership.
// PRE: gymID is the acting staff member's gym
// POST: Membership removed, or ErrMembershipNotInGym when owned elsewhere
func ExecuteDeleteMembership(ctx context.Context, id, gymID string, deps DeleteMembershipDeps) error {
	if _, err := deps.MembershipStore.GetByID(ctx, id); err != nil {
		return err
	}
	inGym, err := deps.MembershipStore.ExistsInGym(ctx, id, gymID)
	if err != nil {
		return err
	}
	if !inGym {
		return ErrMembershipNotInGym
	}
	return deps.MembershipStore.Delete(ctx, id)
}
