package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"
	"time"

	"gymoffice/internal/domain/actor"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const (
	sessionContextKey contextKey = "session"
	actorContextKey   contextKey = "actor"
)

// Session represents an authenticated session. It carries only the login
// id; the actor behind it is resolved on every request.
type Session struct {
	Token     string
	LoginID   string
	CreatedAt time.Time
}

// SessionStore is an in-memory session store.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]Session),
	}
}

// Create stores a new session and returns the token.
// PRE: loginID is non-empty
// POST: Session is stored, token is returned
func (ss *SessionStore) Create(loginID string) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.sessions[token] = Session{
		Token:     token,
		LoginID:   loginID,
		CreatedAt: time.Now(),
	}
	return token, nil
}

// Get retrieves a session by token.
// PRE: token is non-empty
// POST: Returns session if valid and not expired
func (ss *SessionStore) Get(token string) (Session, bool) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	session, ok := ss.sessions[token]
	if !ok {
		return Session{}, false
	}
	// Sessions expire after 24 hours
	if time.Since(session.CreatedAt) > 24*time.Hour {
		delete(ss.sessions, token)
		return Session{}, false
	}
	return session, true
}

// Delete removes a session by token.
// PRE: token is non-empty
// POST: Session with given token is removed
func (ss *SessionStore) Delete(token string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	delete(ss.sessions, token)
}

// ActorResolver resolves the actor behind a login id. Resolution fails
// when the login or its actor record no longer exists.
type ActorResolver interface {
	ResolveLoginID(ctx context.Context, loginID string) (actor.Actor, error)
}

const sessionCookieName = "gym_session"

// SecureCookies controls the Secure flag on session and flash cookies.
// Left false for local HTTP development; set true behind TLS.
var SecureCookies = false

// Auth returns middleware that extracts the session from the cookie,
// resolves the actor behind it and sets both in context. It does NOT
// block requests; use RequireRole for that.
func Auth(sessions *SessionStore, resolver ActorResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(sessionCookieName)
			if err == nil && cookie.Value != "" {
				if session, ok := sessions.Get(cookie.Value); ok {
					ctx := context.WithValue(r.Context(), sessionContextKey, session)
					if act, err := resolver.ResolveLoginID(ctx, session.LoginID); err == nil {
						ctx = context.WithValue(ctx, actorContextKey, act)
					}
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole returns middleware that admits only actors holding the given
// role. Role comparison is case-insensitive.
//
// Outcomes, checked in order:
//   - no session: redirect to /login with a "must log in" flash
//   - session whose login no longer resolves: destroy the session, clear
//     the cookie and redirect with an "invalid session" flash
//   - resolved actor with a different role: redirect with an
//     "insufficient permissions" flash; the session is left untouched
//   - otherwise the request proceeds with the actor in context
func RequireRole(sessions *SessionStore, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := GetSessionFromContext(r.Context())
			if !ok {
				SetFlash(w, FlashError, "You must log in first")
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			act, ok := GetActorFromContext(r.Context())
			if !ok {
				sessions.Delete(session.Token)
				ClearSessionCookie(w)
				SetFlash(w, FlashError, "Your session is no longer valid")
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			if !act.HasRole(role) {
				SetFlash(w, FlashError, "You do not have permission to access this page")
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetSessionFromContext extracts the session from the request context.
func GetSessionFromContext(ctx context.Context) (Session, bool) {
	session, ok := ctx.Value(sessionContextKey).(Session)
	return session, ok
}

// GetActorFromContext extracts the resolved actor from the request context.
func GetActorFromContext(ctx context.Context) (actor.Actor, bool) {
	act, ok := ctx.Value(actorContextKey).(actor.Actor)
	return act, ok
}

// SetSessionCookie sets the session cookie on the response.
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   86400, // 24 hours
	})
}

// ClearSessionCookie removes the session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   -1,
	})
}

// IsRole checks if the current actor has one of the given roles.
func IsRole(ctx context.Context, roles ...string) bool {
	act, ok := GetActorFromContext(ctx)
	if !ok {
		return false
	}
	for _, r := range roles {
		if act.HasRole(r) {
			return true
		}
	}
	return false
}

// IsAdmin checks if the current actor is an admin.
func IsAdmin(ctx context.Context) bool {
	return IsRole(ctx, actor.RoleAdmin)
}

// IsStaff checks if the current actor is an admin or a receptionist.
func IsStaff(ctx context.Context) bool {
	return IsRole(ctx, actor.RoleAdmin, actor.RoleReceptionist)
}

// ContextWithSession returns a context with the given session set.
// Intended for use in tests.
func ContextWithSession(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}

// ContextWithActor returns a context with the given actor set.
// Intended for use in tests.
func ContextWithActor(ctx context.Context, act actor.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey, act)
}

func generateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
