package web

import (
	"net/http"

	"github.com/gorilla/csrf"

	"gymoffice/internal/adapters/http/middleware"
	"gymoffice/internal/application/orchestrators"
)

// handleLogin handles GET (form) and POST (authenticate) for /login.
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		// Already logged in: straight to the role dashboard
		if act, ok := middleware.GetActorFromContext(r.Context()); ok {
			http.Redirect(w, r, basePath(act)+"/dashboard", http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "login.html", map[string]any{
			"CSRFToken": csrf.Token(r),
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		input := orchestrators.LoginInput{
			Email:    r.FormValue("Email"),
			Password: r.FormValue("Password"),
		}
		deps := orchestrators.LoginDeps{
			LoginStore: stores.LoginStore,
		}

		result, err := orchestrators.ExecuteLogin(r.Context(), input, deps)
		if err != nil {
			renderTemplate(w, r, "login.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Error":     err.Error(),
				"Email":     input.Email,
			})
			return
		}

		token, err := sessions.Create(result.LoginID)
		if err != nil {
			http.Error(w, "Session error", http.StatusInternalServerError)
			return
		}

		middleware.SetSessionCookie(w, token)
		http.Redirect(w, r, result.RedirectPath, http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleLogout handles POST /logout. Logging out twice is harmless.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	cookie, err := r.Cookie("gym_session")
	if err == nil {
		sessions.Delete(cookie.Value)
	}

	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
