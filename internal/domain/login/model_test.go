package login_test

import (
	"errors"
	"testing"
	"time"

	"gymoffice/internal/domain/login"
)

func validLogin() login.Login {
	return login.Login{
		ID:        "l-1",
		Email:     "admin@example.com",
		ActorType: "admin",
		ActorID:   "a-1",
		CreatedAt: time.Now(),
	}
}

// TestLogin_Validate tests validation of Login.
func TestLogin_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*login.Login)
		wantErr error
	}{
		{
			name:    "valid login",
			mutate:  func(l *login.Login) {},
			wantErr: nil,
		},
		{
			name:    "empty email",
			mutate:  func(l *login.Login) { l.Email = "  " },
			wantErr: login.ErrEmptyEmail,
		},
		{
			name:    "email without at sign",
			mutate:  func(l *login.Login) { l.Email = "adminexample.com" },
			wantErr: login.ErrInvalidEmail,
		},
		{
			name:    "unknown actor type",
			mutate:  func(l *login.Login) { l.ActorType = "superuser" },
			wantErr: login.ErrInvalidActorType,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := validLogin()
			tt.mutate(&l)
			err := l.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestValidatePassword tests plaintext password constraints.
func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"valid", "secret123", nil},
		{"empty", "", login.ErrEmptyPassword},
		{"too short", "abc", login.ErrPasswordTooShort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := login.ValidatePassword(tt.password)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidatePassword() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidatePassword() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestLogin_Passwords tests the bcrypt round trip.
func TestLogin_Passwords(t *testing.T) {
	l := validLogin()
	if err := l.SetPassword("secret123"); err != nil {
		t.Fatalf("SetPassword() unexpected error: %v", err)
	}
	if l.PasswordHash == "" || l.PasswordHash == "secret123" {
		t.Fatal("SetPassword() did not store a hash")
	}
	if err := l.CheckPassword("secret123"); err != nil {
		t.Errorf("CheckPassword() rejected the correct password: %v", err)
	}
	if err := l.CheckPassword("wrong"); !errors.Is(err, login.ErrWrongPassword) {
		t.Errorf("CheckPassword() = %v, want %v", err, login.ErrWrongPassword)
	}

	empty := validLogin()
	if err := empty.CheckPassword("anything"); !errors.Is(err, login.ErrWrongPassword) {
		t.Errorf("CheckPassword() with no hash = %v, want %v", err, login.ErrWrongPassword)
	}
}
