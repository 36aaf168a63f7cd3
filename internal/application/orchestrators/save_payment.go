package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"time"

	"gymoffice/internal/adapters/email"
	"gymoffice/internal/domain/payment"

	"github.com/google/uuid"
)

// PaymentStore defines the interface for payment persistence.
type PaymentStore interface {
	GetByID(ctx context.Context, id string) (payment.Payment, error)
	Save(ctx context.Context, p payment.Payment) error
	Delete(ctx context.Context, id string) error
}

// SavePaymentInput carries input for the save payment orchestrator.
type SavePaymentInput struct {
	ID           string
	UserID       string
	MembershipID string
	Date         string
	Amount       float64
	Method       string
}

// SavePaymentDeps holds dependencies for SavePayment.
type SavePaymentDeps struct {
	PaymentStore    PaymentStore
	MembershipStore MembershipStore
	UserStore       UserStore
	EmailSender     email.Sender
	Now             func() time.Time
}

var ErrPaymentNotInGym = errors.New("the payment does not belong to this gym")

// ExecuteSavePayment records a payment for a membership in the actor's gym
// and emails the member a receipt when a sender is configured.
// PRE: gymID is the acting staff member's gym
// POST: Payment persisted; receipt send failures are logged, not returned
// INVARIANT: Both the user and the membership must belong to gymID
func ExecuteSavePayment(ctx context.Context, input SavePaymentInput, gymID string, deps SavePaymentDeps) (payment.Payment, error) {
	owner, err := deps.UserStore.GetByID(ctx, input.UserID)
	if err != nil {
		return payment.Payment{}, err
	}
	if owner.GymID != gymID {
		return payment.Payment{}, ErrUserNotInGym
	}

	inGym, err := deps.MembershipStore.ExistsInGym(ctx, input.MembershipID, gymID)
	if err != nil {
		return payment.Payment{}, err
	}
	if !inGym {
		return payment.Payment{}, ErrMembershipNotInGym
	}

	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}

	p := payment.Payment{
		ID:           input.ID,
		UserID:       input.UserID,
		MembershipID: input.MembershipID,
		Date:         input.Date,
		Amount:       input.Amount,
		Method:       input.Method,
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
		p.CreatedAt = now().UTC()
	} else {
		existing, err := deps.PaymentStore.GetByID(ctx, p.ID)
		if err != nil {
			return payment.Payment{}, err
		}
		// The targeted payment itself must belong to the gym, not just
		// the user and membership the update points at.
		payer, err := deps.UserStore.GetByID(ctx, existing.UserID)
		if err != nil {
			return payment.Payment{}, err
		}
		if payer.GymID != gymID {
			return payment.Payment{}, ErrPaymentNotInGym
		}
		p.CreatedAt = existing.CreatedAt
	}
	if err := p.Validate(); err != nil {
		return payment.Payment{}, err
	}

	if err := deps.PaymentStore.Save(ctx, p); err != nil {
		return payment.Payment{}, err
	}

	if deps.EmailSender != nil && owner.Email != "" {
		req := email.SendRequest{
			To:      []string{owner.Email},
			Subject: "Payment receipt",
			HTML: fmt.Sprintf(
				"<p>Hi %s,</p><p>We received your payment of $%.2f (%s) on %s. Thank you!</p>",
				html.EscapeString(owner.Name), p.Amount, html.EscapeString(p.Method), p.Date),
		}
		if _, err := deps.EmailSender.Send(ctx, req); err != nil {
			slog.Error("receipt_email_failed", "payment_id", p.ID, "error", err)
		}
	}

	return p, nil
}

// DeletePaymentDeps holds dependencies for DeletePayment.
type DeletePaymentDeps struct {
	PaymentStore PaymentStore
	UserStore    UserStore
}

// ExecuteDeletePayment removes a payment after checking gym ownership.
// PRE: gymID is the acting staff member's gym
// POST: Payment removed, or ErrPaymentNotInGym when owned elsewhere
func ExecuteDeletePayment(ctx context.Context, id, gymID string, deps DeletePaymentDeps) error {
	p, err := deps.PaymentStore.GetByID(ctx, id)
	if err != nil {
		return err
	}
	owner, err := deps.UserStore.GetByID(ctx, p.UserID)
	if err != nil {
		return err
	}
	if owner.GymID != gymID {
		return ErrPaymentNotInGym
	}
	return deps.PaymentStore.Delete(ctx, id)
}
