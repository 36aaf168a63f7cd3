package browser_test

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"

	_ "modernc.org/sqlite"

	web "gymoffice/internal/adapters/http"
	"gymoffice/internal/adapters/http/middleware"
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
	"gymoffice/internal/domain/actor"
	"gymoffice/internal/domain/login"
)

const (
	adminEmail    = "admin@test.com"
	adminPassword = "TestPass123!"

	receptionEmail    = "front@test.com"
	receptionPassword = "FrontDesk456!"
)

// testApp holds the running test server and Playwright handles.
type testApp struct {
	BaseURL string
	DB      *sql.DB
	Server  *http.Server
	PW      *playwright.Playwright
	Browser playwright.Browser
	Stores  *web.Stores
	GymID   string
	tmpDir  string
}

// newTestApp creates a fully wired app with a temp SQLite DB and starts an HTTP server.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	// Create temp directory for the database
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open test DB: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := storage.InitDB(db); err != nil {
		t.Fatalf("failed to init test DB: %v", err)
	}

	tdb := storage.NewTimedDB(db)
	gyms := gymStore.NewSQLiteStore(tdb)
	logins := loginStore.NewSQLiteStore(tdb)
	staff := staffStore.NewSQLiteStore(tdb)
	users := userStore.NewSQLiteStore(tdb)
	stores := &web.Stores{
		GymStore:             gyms,
		LoginStore:           logins,
		StaffStore:           staff,
		UserStore:            users,
		MembershipStore:      membershipStore.NewSQLiteStore(tdb),
		PaymentStore:         paymentStore.NewSQLiteStore(tdb),
		UserAttendanceStore:  attendanceStore.NewSQLiteStore(tdb),
		CoachAttendanceStore: attendanceStore.NewCoachSQLiteStore(tdb),
		CoachStore:           coachStore.NewSQLiteStore(tdb),
	}

	// Seed the gym plus the admin account
	ctx := context.Background()
	seedDeps := orchestrators.SeedDeps{
		GymStore:   gyms,
		LoginStore: logins,
		StaffStore: staff,
		UserStore:  users,
		CoachStore: stores.CoachStore,
	}
	err = orchestrators.ExecuteSeed(ctx, orchestrators.SeedInput{
		GymName:       "Test Gym",
		AdminEmail:    adminEmail,
		AdminPassword: adminPassword,
	}, seedDeps)
	if err != nil {
		t.Fatalf("failed to seed: %v", err)
	}
	allGyms, err := gyms.List(ctx)
	if err != nil || len(allGyms) == 0 {
		t.Fatalf("failed to load seeded gym: %v", err)
	}
	gymID := allGyms[0].ID

	// Add a receptionist with a known password
	rec := actor.Actor{
		ID:    uuid.New().String(),
		Role:  actor.RoleReceptionist,
		Name:  "Front Desk",
		Email: receptionEmail,
		GymID: gymID,
	}
	if err := staff.SaveReceptionist(ctx, rec); err != nil {
		t.Fatalf("failed to create receptionist: %v", err)
	}
	recLogin := login.Login{
		ID:        uuid.New().String(),
		Email:     receptionEmail,
		ActorType: actor.RoleReceptionist,
		ActorID:   rec.ID,
		CreatedAt: time.Now().UTC(),
	}
	if err := recLogin.SetPassword(receptionPassword); err != nil {
		t.Fatalf("failed to set receptionist password: %v", err)
	}
	if err := logins.Save(ctx, recLogin); err != nil {
		t.Fatalf("failed to save receptionist login: %v", err)
	}

	if err := orchestrators.ExecuteSeedDemoUsers(ctx, gymID, seedDeps); err != nil {
		t.Fatalf("failed to seed demo users: %v", err)
	}

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find free port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	// Change to project root so relative template/static paths work
	projectRoot := findProjectRoot(t)
	origDir, _ := os.Getwd()
	if err := os.Chdir(projectRoot); err != nil {
		t.Fatalf("failed to chdir to project root: %v", err)
	}
	t.Cleanup(func() { os.Chdir(origDir) })

	// Add test port to CSRF trusted origins before creating mux
	middleware.ExtraTrustedOrigins = append(middleware.ExtraTrustedOrigins,
		fmt.Sprintf("127.0.0.1:%d", port),
		fmt.Sprintf("localhost:%d", port),
	)

	// Start HTTP server
	mux := web.NewMux("static", stores)
	srv := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", port),
		Handler: mux,
	}
	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("test server error: %v", err)
		}
	}()

	// Wait for server to be ready
	baseURL := fmt.Sprintf("http://127.0.0.1:%d", port)
	for i := 0; i < 50; i++ {
		resp, err := http.Get(baseURL + "/login")
		if err == nil {
			resp.Body.Close()
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	// Start Playwright
	pw, err := playwright.Run()
	if err != nil {
		t.Fatalf("failed to start Playwright: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		t.Fatalf("failed to launch browser: %v", err)
	}

	app := &testApp{
		BaseURL: baseURL,
		DB:      db,
		Server:  srv,
		PW:      pw,
		Browser: browser,
		Stores:  stores,
		GymID:   gymID,
		tmpDir:  tmpDir,
	}

	t.Cleanup(func() {
		browser.Close()
		pw.Stop()
		srv.Close()
		db.Close()
	})

	return app
}

// newPage creates a new browser page (tab).
func (a *testApp) newPage(t *testing.T) playwright.Page {
	t.Helper()
	page, err := a.Browser.NewPage()
	if err != nil {
		t.Fatalf("failed to create page: %v", err)
	}
	t.Cleanup(func() { page.Close() })
	return page
}

// login navigates to the login page and logs in with the given credentials,
// waiting for the redirect to wantPath.
func (a *testApp) login(t *testing.T, page playwright.Page, email, password, wantPath string) {
	t.Helper()
	_, err := page.Goto(a.BaseURL + "/login")
	if err != nil {
		t.Fatalf("failed to navigate to login: %v", err)
	}
	if err := page.Locator("input[name=Email]").Fill(email); err != nil {
		t.Fatalf("failed to fill email: %v", err)
	}
	if err := page.Locator("input[name=Password]").Fill(password); err != nil {
		t.Fatalf("failed to fill password: %v", err)
	}
	if err := page.Locator("button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to click login: %v", err)
	}
	if err := page.WaitForURL(a.BaseURL+wantPath, playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("login did not redirect to %s: %v", wantPath, err)
	}
}

// loginAdmin logs in as the seeded admin.
func (a *testApp) loginAdmin(t *testing.T, page playwright.Page) {
	t.Helper()
	a.login(t, page, adminEmail, adminPassword, "/admin/dashboard")
}

// loginReceptionist logs in as the seeded receptionist.
func (a *testApp) loginReceptionist(t *testing.T, page playwright.Page) {
	t.Helper()
	a.login(t, page, receptionEmail, receptionPassword, "/receptionist/dashboard")
}

// findProjectRoot walks up from the working directory to find the project root (contains go.mod).
func findProjectRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("could not find project root (go.mod) from working directory")
		}
		dir = parent
	}
}
