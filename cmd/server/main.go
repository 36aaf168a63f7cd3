package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"

	_ "modernc.org/sqlite"

	emailPkg "gymoffice/internal/adapters/email"
	web "gymoffice/internal/adapters/http"
	"gymoffice/internal/adapters/storage"
	attendanceStore "gymoffice/internal/adapters/storage/attendance"
	coachStore "gymoffice/internal/adapters/storage/coach"
	gymStore "gymoffice/internal/adapters/storage/gym"
	loginStore "gymoffice/internal/adapters/storage/login"
	membershipStore "gymoffice/internal/adapters/storage/membership"
	paymentStore "gymoffice/internal/adapters/storage/payment"
	staffStore "gymoffice/internal/adapters/storage/staff"
	userStore "gymoffice/internal/adapters/storage/user"
	"gymoffice/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// WAL mode, foreign keys and a busy timeout keep the single SQLite
	// file usable under concurrent requests.
	dbPath := envOrDefault("GYM_DB_PATH", "gymoffice.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	log.Println("Database initialized successfully!")

	// Wrap DB so every query is timed and slow ones logged
	timedDB := storage.NewTimedDB(db)

	gStore := gymStore.NewSQLiteStore(timedDB)
	lStore := loginStore.NewSQLiteStore(timedDB)
	sStore := staffStore.NewSQLiteStore(timedDB)
	uStore := userStore.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		GymStore:             gStore,
		LoginStore:           lStore,
		StaffStore:           sStore,
		UserStore:            uStore,
		MembershipStore:      membershipStore.NewSQLiteStore(timedDB),
		PaymentStore:         paymentStore.NewSQLiteStore(timedDB),
		UserAttendanceStore:  attendanceStore.NewSQLiteStore(timedDB),
		CoachAttendanceStore: attendanceStore.NewCoachSQLiteStore(timedDB),
		CoachStore:           coachStore.NewSQLiteStore(timedDB),
	}

	// Seed the gym and staff logins on first start
	seedDeps := orchestrators.SeedDeps{
		GymStore:   gStore,
		LoginStore: lStore,
		StaffStore: sStore,
		UserStore:  uStore,
		CoachStore: stores.CoachStore,
	}
	seedInput := orchestrators.SeedInput{
		GymName:       envOrDefault("GYM_NAME", "Iron Temple Gym"),
		AdminEmail:    envOrDefault("GYM_ADMIN_EMAIL", "admin@irontemple.example"),
		AdminPassword: envOrDefault("GYM_ADMIN_PASSWORD", "change-me-soon"),
	}
	if err := orchestrators.ExecuteSeed(context.Background(), seedInput, seedDeps); err != nil {
		log.Fatalf("failed to seed: %v", err)
	}

	// Demo gym users for development only
	if os.Getenv("GYM_ENV") != "production" {
		gyms, err := gStore.List(context.Background())
		if err != nil {
			log.Fatalf("failed to list gyms for seeding: %v", err)
		}
		if len(gyms) > 0 {
			if err := orchestrators.ExecuteSeedDemoUsers(context.Background(), gyms[0].ID, seedDeps); err != nil {
				log.Fatalf("failed to seed demo users: %v", err)
			}
			log.Println("Demo users loaded (dev mode)")
		}
	}

	// Configure email sender for payment receipts
	resendKey := os.Getenv("GYM_RESEND_KEY")
	emailFrom := envOrDefault("GYM_RESEND_FROM", "Iron Temple Gym <noreply@irontemple.example>")
	emailReply := envOrDefault("GYM_REPLY_TO", "info@irontemple.example")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom), emailFrom, emailReply)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), emailFrom, emailReply)
		if os.Getenv("GYM_ENV") == "production" {
			log.Println("WARNING: GYM_RESEND_KEY is not set; email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop; set GYM_RESEND_KEY for real delivery)")
		}
	}

	mux := web.NewMux("static", stores)

	addr := envOrDefault("GYM_ADDR", ":8080")
	log.Printf("Gym office %s starting on %s (env=%s)", version, addr, envOrDefault("GYM_ENV", "development"))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
