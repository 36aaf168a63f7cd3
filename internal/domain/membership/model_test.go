package membership_test

import (
	"errors"
	"testing"

	"gymoffice/internal/domain/membership"
)

func validMembership() membership.Membership {
	return membership.Membership{
		ID:         "m-1",
		UserID:     "10234567",
		Type:       membership.TypeMonthly,
		Amount:     45,
		Discount:   10,
		StartDate:  "2026-01-01",
		FinishDate: "2026-02-01",
	}
}

// TestMembership_Validate tests validation of Membership.
func TestMembership_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*membership.Membership)
		wantErr error
	}{
		{
			name:    "valid membership",
			mutate:  func(m *membership.Membership) {},
			wantErr: nil,
		},
		{
			name:    "same-day daily pass",
			mutate:  func(m *membership.Membership) { m.Type = membership.TypeDaily; m.FinishDate = m.StartDate },
			wantErr: nil,
		},
		{
			name:    "unknown type",
			mutate:  func(m *membership.Membership) { m.Type = "Weekly" },
			wantErr: membership.ErrInvalidType,
		},
		{
			name:    "negative amount",
			mutate:  func(m *membership.Membership) { m.Amount = -1 },
			wantErr: membership.ErrNegativeAmount,
		},
		{
			name:    "discount over 100",
			mutate:  func(m *membership.Membership) { m.Discount = 101 },
			wantErr: membership.ErrInvalidDiscount,
		},
		{
			name:    "negative discount",
			mutate:  func(m *membership.Membership) { m.Discount = -5 },
			wantErr: membership.ErrInvalidDiscount,
		},
		{
			name:    "finish before start",
			mutate:  func(m *membership.Membership) { m.FinishDate = "2025-12-31" },
			wantErr: membership.ErrInvalidDates,
		},
		{
			name:    "missing user",
			mutate:  func(m *membership.Membership) { m.UserID = "" },
			wantErr: membership.ErrMissingUser,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validMembership()
			tt.mutate(&m)
			err := m.Validate()
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

// TestMembership_Validate_BadDates checks malformed dates are rejected.
func TestMembership_Validate_BadDates(t *testing.T) {
	m := validMembership()
	m.StartDate = "01/01/2026"
	if err := m.Validate(); err == nil {
		t.Error("Validate() accepted a malformed start date")
	}
	m = validMembership()
	m.FinishDate = "soon"
	if err := m.Validate(); err == nil {
		t.Error("Validate() accepted a malformed finish date")
	}
}
