package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"gymoffice/internal/domain/actor"
	"gymoffice/internal/domain/login"
)

// LoginStoreForAuth defines the store interface needed by Login.
type LoginStoreForAuth interface {
	GetByEmail(ctx context.Context, email string) (login.Login, error)
	Resolve(ctx context.Context, l login.Login) (actor.Actor, error)
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult carries the result of a successful login.
type LoginResult struct {
	LoginID      string
	Actor        actor.Actor
	RedirectPath string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	LoginStore LoginStoreForAuth
}

var (
	ErrEmailNotRegistered = errors.New("the email is not registered")
	ErrIncorrectPassword  = errors.New("the password is incorrect")
	ErrUnknownUserType    = errors.New("unrecognized user type")
)

// ExecuteLogin validates credentials and resolves the actor behind them.
// PRE: Email and password provided
// POST: Returns the login id, the resolved actor and a role dashboard path
// INVARIANT: The actor type must map to a known role
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	if input.Email == "" {
		return LoginResult{}, login.ErrEmptyEmail
	}
	if len(input.Email) > login.MaxEmailLength {
		return LoginResult{}, login.ErrEmailTooLong
	}
	if !strings.Contains(input.Email, "@") {
		return LoginResult{}, login.ErrInvalidEmail
	}
	if err := login.ValidatePassword(input.Password); err != nil {
		return LoginResult{}, err
	}

	l, err := deps.LoginStore.GetByEmail(ctx, input.Email)
	if err != nil {
		slog.Info("auth_event", "event", "login_failed", "email", input.Email, "reason", "not_registered")
		return LoginResult{}, ErrEmailNotRegistered
	}

	if err := l.CheckPassword(input.Password); err != nil {
		slog.Info("auth_event", "event", "login_failed", "email", input.Email, "reason", "wrong_password")
		return LoginResult{}, ErrIncorrectPassword
	}

	act, err := deps.LoginStore.Resolve(ctx, l)
	if err != nil {
		slog.Info("auth_event", "event", "login_failed", "email", input.Email, "reason", "unresolved_actor")
		return LoginResult{}, ErrUnknownUserType
	}

	path, ok := dashboardPath(act.Role)
	if !ok {
		slog.Info("auth_event", "event", "login_failed", "email", input.Email, "reason", "unknown_role", "role", act.Role)
		return LoginResult{}, ErrUnknownUserType
	}

	slog.Info("auth_event", "event", "login_success", "email", input.Email, "role", act.Role)

	return LoginResult{
		LoginID:      l.ID,
		Actor:        act,
		RedirectPath: path,
	}, nil
}

// dashboardPath maps a role to its landing page after login.
func dashboardPath(role string) (string, bool) {
	switch strings.ToLower(role) {
	case actor.RoleAdmin:
		return "/admin/dashboard", true
	case actor.RoleReceptionist:
		return "/receptionist/dashboard", true
	case actor.RoleUser:
		return "/dashboard", true
	}
	return "", false
}
