package web

import (
	"encoding/json"
	"net/http"

	"gymoffice/internal/application/projections"
)

// handleDashboard handles GET {base}/dashboard for admin and receptionist.
func handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	act := currentActor(r)

	query := projections.GetDashboardQuery{GymID: act.GymID}
	deps := projections.GetDashboardDeps{
		UserStore:    stores.UserStore,
		PaymentStore: stores.PaymentStore,
		GymStore:     stores.GymStore,
	}

	result, err := projections.QueryGetDashboard(r.Context(), query, deps, timeNow())
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "dashboard.html", map[string]any{
			"GymName":         result.GymName,
			"WelcomeHTML":     renderMarkdown(result.Welcome),
			"ActiveUsers":     result.ActiveUsers,
			"InactiveUsers":   result.InactiveUsers,
			"TotalUsers":      result.TotalUsers,
			"PaidToday":       result.PaidToday,
			"PaidThisMonth":   result.PaidThisMonth,
			"PaidThisYear":    result.PaidThisYear,
			"PaymentsByMonth": result.PaymentsByMonth,
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// handlePaymentStats handles GET {base}/dashboard/payments.
// Returns the earnings sums and the per-month series as JSON.
func handlePaymentStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	act := currentActor(r)

	result, err := projections.QueryGetPaymentStats(r.Context(), act.GymID, stores.PaymentStore, timeNow())
	if err != nil {
		internalError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// handleUserStats handles GET {base}/dashboard/user-stats?period=...
// Returns user counts by state for the requested registration period.
func handleUserStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	act := currentActor(r)

	query := projections.GetUserStatsQuery{
		GymID:  act.GymID,
		Period: r.URL.Query().Get("period"),
	}
	deps := projections.GetUserStatsDeps{UserStore: stores.UserStore}

	result, err := projections.QueryGetUserStats(r.Context(), query, deps, timeNow())
	if err != nil {
		if err == projections.ErrUnknownPeriod {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		internalError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// handleUsersByMonth handles GET {base}/dashboard/users-by-month.
// Returns the registrations-per-month series for charting.
func handleUsersByMonth(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	act := currentActor(r)

	deps := projections.GetUserStatsDeps{UserStore: stores.UserStore}
	result, err := projections.QueryGetUsersByMonth(r.Context(), act.GymID, deps)
	if err != nil {
		internalError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// handleMemberHome handles GET /dashboard for the member (gym user) role.
func handleMemberHome(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	act := currentActor(r)

	g, err := stores.GymStore.GetByID(r.Context(), act.GymID)
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "member_home.html", map[string]any{
			"GymName":     g.Name,
			"WelcomeHTML": renderMarkdown(g.Welcome),
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"gym": g.Name, "name": act.Name})
}
