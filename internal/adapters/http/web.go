package web

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"gymoffice/internal/adapters/email"
	"gymoffice/internal/adapters/http/middleware"
	attendanceStore "gymoffice/internal/adapters/storage/attendance"
	coachStore "gymoffice/internal/adapters/storage/coach"
	gymStore "gymoffice/internal/adapters/storage/gym"
	loginStore "gymoffice/internal/adapters/storage/login"
	membershipStore "gymoffice/internal/adapters/storage/membership"
	paymentStore "gymoffice/internal/adapters/storage/payment"
	staffStore "gymoffice/internal/adapters/storage/staff"
	userStore "gymoffice/internal/adapters/storage/user"
	"gymoffice/internal/domain/actor"
)

// Stores holds all storage dependencies.
type Stores struct {
	GymStore             gymStore.Store
	LoginStore           loginStore.Store
	StaffStore           staffStore.Store
	UserStore            userStore.Store
	MembershipStore      membershipStore.Store
	PaymentStore         paymentStore.Store
	UserAttendanceStore  attendanceStore.Store
	CoachAttendanceStore attendanceStore.CoachStore
	CoachStore           coachStore.Store
}

// loadCSRFKey reads the CSRF secret from GYM_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("GYM_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("GYM_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("GYM_ENV") == "production" {
		log.Fatal("GYM_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set GYM_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// Email configuration
var emailFromAddress string
var emailReplyTo string

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender, from, replyTo string) {
	emailSender = sender
	emailFromAddress = from
	emailReplyTo = replyTo
}

// loginResolver adapts the login store to the middleware's ActorResolver.
type loginResolver struct {
	logins loginStore.Store
}

func (lr loginResolver) ResolveLoginID(ctx context.Context, loginID string) (actor.Actor, error) {
	l, err := lr.logins.GetByID(ctx, loginID)
	if err != nil {
		return actor.Actor{}, err
	}
	return lr.logins.Resolve(ctx, l)
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores) http.Handler {
	stores = s
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = os.Getenv("GYM_ENV") == "production"

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Timing -> Auth -> CSRF -> SecurityHeaders -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions, loginResolver{logins: s.LoginStore}),
		middleware.RateLimit(limiter),
		middleware.Timing(),
	)
}
