package web

import (
	"net/http"

	"gymoffice/internal/adapters/http/middleware"
	"gymoffice/internal/domain/actor"
)

// registerRoutes attaches all application routes to the mux. Each role
// section is wrapped in its own role gate; handlers themselves are
// role-agnostic and read the actor from context.
func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/login", handleLogin)
	mux.HandleFunc("/logout", handleLogout)

	admin := middleware.RequireRole(sessions, actor.RoleAdmin)
	reception := middleware.RequireRole(sessions, actor.RoleReceptionist)
	member := middleware.RequireRole(sessions, actor.RoleUser)

	for _, route := range []struct {
		path      string
		handler   http.HandlerFunc
		adminOnly bool
	}{
		{"dashboard", handleDashboard, false},
		{"users", handleUsers, false},
		{"memberships", handleMemberships, false},
		{"payments", handlePayments, false},
		{"attendance-users", handleAttendanceUsers, false},
		// Coach attendance is staff administration, not front-desk work.
		{"attendance-coaches", handleAttendanceCoaches, true},
	} {
		// The subtree registration serves /{resource}/{id} requests;
		// handlers read the trailing id via pathID.
		mux.Handle("/admin/"+route.path, admin(route.handler))
		mux.Handle("/admin/"+route.path+"/", admin(route.handler))
		if route.adminOnly {
			continue
		}
		mux.Handle("/receptionist/"+route.path, reception(route.handler))
		mux.Handle("/receptionist/"+route.path+"/", reception(route.handler))
	}

	// JSON stats feeding the admin dashboard charts.
	mux.Handle("/admin/dashboard/user-stats", admin(http.HandlerFunc(handleUserStats)))
	mux.Handle("/admin/dashboard/users-by-month", admin(http.HandlerFunc(handleUsersByMonth)))
	mux.Handle("/admin/dashboard/payments", admin(http.HandlerFunc(handlePaymentStats)))

	mux.Handle("/dashboard", member(http.HandlerFunc(handleMemberHome)))
}
