package actor

import "strings"

// Role constants. The role tag discriminates the polymorphic actor
// behind a login: back-office admins, front-desk receptionists and
// plain gym users.
const (
	RoleAdmin        = "admin"
	RoleReceptionist = "receptionist"
	RoleUser         = "user"
)

// ValidRoles contains all valid role values.
var ValidRoles = []string{RoleAdmin, RoleReceptionist, RoleUser}

// Actor is the authenticated principal for a request, resolved from the
// session's login on every request. Role is the discriminant; the other
// fields are filled from whichever row the login points at.
type Actor struct {
	ID    string
	Role  string
	Name  string
	Email string
	GymID string
}

// HasRole reports whether the actor carries the given role tag.
// Comparison is case-insensitive.
// INVARIANT: Actor fields are not mutated
func (a Actor) HasRole(role string) bool {
	return strings.EqualFold(a.Role, role)
}

// IsAdmin returns true if the actor has the admin role.
// INVARIANT: Actor fields are not mutated
func (a Actor) IsAdmin() bool {
	return a.HasRole(RoleAdmin)
}

// IsValidRole reports whether role is a recognised role tag.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}
