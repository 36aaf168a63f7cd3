package user_test

import (
	"errors"
	"testing"

	"gymoffice/internal/domain/user"
)

func validUser() user.User {
	return user.User{
		ID:          "10234567",
		GymID:       "gym-1",
		Name:        "Ana Garcia",
		Gender:      user.GenderFemale,
		BirthDate:   "1994-03-12",
		PhoneNumber: "555-0101",
		Email:       "ana@example.com",
		State:       user.StateActive,
	}
}

// TestUser_Validate tests validation of User.
func TestUser_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*user.User)
		wantErr error
	}{
		{
			name:    "valid user",
			mutate:  func(u *user.User) {},
			wantErr: nil,
		},
		{
			name:    "id too short",
			mutate:  func(u *user.User) { u.ID = "1234" },
			wantErr: user.ErrInvalidID,
		},
		{
			name:    "id with letters",
			mutate:  func(u *user.User) { u.ID = "12a45678" },
			wantErr: user.ErrInvalidID,
		},
		{
			name:    "id too long",
			mutate:  func(u *user.User) { u.ID = "123456789012345678901" },
			wantErr: user.ErrInvalidID,
		},
		{
			name:    "empty name",
			mutate:  func(u *user.User) { u.Name = "   " },
			wantErr: user.ErrEmptyName,
		},
		{
			name:    "invalid gender",
			mutate:  func(u *user.User) { u.Gender = "X" },
			wantErr: user.ErrInvalidGender,
		},
		{
			name:    "invalid birth date",
			mutate:  func(u *user.User) { u.BirthDate = "12/03/1994" },
			wantErr: user.ErrInvalidDate,
		},
		{
			name:    "empty phone",
			mutate:  func(u *user.User) { u.PhoneNumber = "" },
			wantErr: user.ErrEmptyPhone,
		},
		{
			name:    "email without at sign",
			mutate:  func(u *user.User) { u.Email = "ana.example.com" },
			wantErr: user.ErrInvalidEmail,
		},
		{
			name:    "invalid state",
			mutate:  func(u *user.User) { u.State = "Suspended" },
			wantErr: user.ErrInvalidState,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := validUser()
			tt.mutate(&u)
			err := u.Validate()
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

// TestUser_Validate_MissingGym checks tenant membership is enforced.
func TestUser_Validate_MissingGym(t *testing.T) {
	u := validUser()
	u.GymID = ""
	if err := u.Validate(); err == nil {
		t.Error("Validate() accepted a user without a gym")
	}
}

// TestUser_IsActive checks state comparison is case-insensitive.
func TestUser_IsActive(t *testing.T) {
	tests := []struct {
		state string
		want  bool
	}{
		{user.StateActive, true},
		{"activo", true},
		{"ACTIVO", true},
		{user.StateInactive, false},
		{"inactivo", false},
		{"", false},
	}
	for _, tt := range tests {
		u := user.User{State: tt.state}
		if got := u.IsActive(); got != tt.want {
			t.Errorf("IsActive() with state %q = %v, want %v", tt.state, got, tt.want)
		}
	}
}

// TestTitleName checks front-desk name normalization.
func TestTitleName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ana garcia", "Ana Garcia"},
		{"ANA GARCIA", "Ana Garcia"},
		{"  luis   mendez  ", "Luis Mendez"},
		{"carla", "Carla"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := user.TitleName(tt.in); got != tt.want {
			t.Errorf("TitleName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
