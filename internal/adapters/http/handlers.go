package web

import (
	"bytes"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"gymoffice/internal/adapters/http/middleware"
	"gymoffice/internal/domain/actor"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// renderMarkdown converts markdown to sanitized HTML for templates.
func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

const templatesDir = "internal/adapters/http/templates"

func isHTMLRequest(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "application/xhtml+xml")
}

func isFormRequest(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
}

// effectiveMethod returns the request method, honouring the _method form
// field so HTML forms can issue PUT and DELETE.
func effectiveMethod(r *http.Request) string {
	if r.Method == "POST" && isFormRequest(r) {
		if err := r.ParseForm(); err == nil {
			switch strings.ToUpper(r.PostFormValue("_method")) {
			case "PUT":
				return "PUT"
			case "DELETE":
				return "DELETE"
			}
		}
	}
	return r.Method
}

// pathID extracts the trailing id from single-resource paths like
// /admin/users/10234567. Returns "" on the bare collection path.
func pathID(r *http.Request) string {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) == 3 {
		return parts[2]
	}
	return ""
}

// currentActor returns the resolved actor for the request. The role gate
// guarantees presence on protected routes.
func currentActor(r *http.Request) actor.Actor {
	act, _ := middleware.GetActorFromContext(r.Context())
	return act
}

// basePath returns the URL prefix for the actor's role section.
func basePath(act actor.Actor) string {
	if act.HasRole(actor.RoleReceptionist) {
		return "/receptionist"
	}
	return "/admin"
}

// redirectWithError sends the user back to target with an error flash.
func redirectWithError(w http.ResponseWriter, r *http.Request, target, message string) {
	middleware.SetFlash(w, middleware.FlashError, message)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// redirectWithSuccess sends the user to target with a success flash.
func redirectWithSuccess(w http.ResponseWriter, r *http.Request, target, message string) {
	middleware.SetFlash(w, middleware.FlashSuccess, message)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	act, loggedIn := middleware.GetActorFromContext(r.Context())

	// Flashes must be taken before the body starts writing, or their
	// Set-Cookie headers would be dropped.
	flashErr := middleware.TakeFlash(w, r, middleware.FlashError)
	flashOK := middleware.TakeFlash(w, r, middleware.FlashSuccess)

	funcMap := template.FuncMap{
		"currentRole":    func() string { return strings.ToLower(act.Role) },
		"currentName":    func() string { return act.Name },
		"isLoggedIn":     func() bool { return loggedIn },
		"isAdmin":        func() bool { return act.HasRole(actor.RoleAdmin) },
		"basePath":       func() string { return basePath(act) },
		"csrfToken":      func() string { return csrf.Token(r) },
		"renderMarkdown": renderMarkdown,
		"add":            func(a, b int) int { return a + b },
		"sub":            func(a, b int) int { return a - b },
		"flashError":     func() string { return flashErr },
		"flashSuccess":   func() string { return flashOK },
	}

	layoutPath := filepath.Join(templatesDir, "layout.html")
	pagePath := filepath.Join(templatesDir, templateName)
	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, pagePath)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
}
