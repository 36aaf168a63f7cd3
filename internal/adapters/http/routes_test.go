package web

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"

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
	"gymoffice/internal/application/projections"
	"gymoffice/internal/domain/actor"
	"gymoffice/internal/domain/gym"
	"gymoffice/internal/domain/login"
	"gymoffice/internal/domain/membership"
	"gymoffice/internal/domain/payment"
	"gymoffice/internal/domain/user"
)

// newTestStores backs the package globals with a fresh in-memory database
// and seeds two gyms, so handlers can be called directly.
func newTestStores(t *testing.T) *Stores {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	// A second pool connection would get its own empty in-memory DB.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := storage.InitDB(db); err != nil {
		t.Fatalf("init db: %v", err)
	}
	timed := storage.NewTimedDB(db)

	s := &Stores{
		GymStore:             gymStore.NewSQLiteStore(timed),
		LoginStore:           loginStore.NewSQLiteStore(timed),
		StaffStore:           staffStore.NewSQLiteStore(timed),
		UserStore:            userStore.NewSQLiteStore(timed),
		MembershipStore:      membershipStore.NewSQLiteStore(timed),
		PaymentStore:         paymentStore.NewSQLiteStore(timed),
		UserAttendanceStore:  attendanceStore.NewSQLiteStore(timed),
		CoachAttendanceStore: attendanceStore.NewCoachSQLiteStore(timed),
		CoachStore:           coachStore.NewSQLiteStore(timed),
	}
	stores = s
	sessions = middleware.NewSessionStore()

	ctx := context.Background()
	for _, g := range []gym.Gym{
		{ID: "gym-1", Name: "Iron Temple", Address: "Main St 1", Welcome: "Welcome"},
		{ID: "gym-2", Name: "Other Gym", Address: "Side St 2", Welcome: "Hi"},
	} {
		if err := s.GymStore.Save(ctx, g); err != nil {
			t.Fatalf("seed gym %s: %v", g.ID, err)
		}
	}
	return s
}

func adminActor() actor.Actor {
	return actor.Actor{
		ID:    "staff-1",
		Role:  actor.RoleAdmin,
		Name:  "Valeria Sosa",
		Email: "valeria@iron.test",
		GymID: "gym-1",
	}
}

// actorRequest builds a request carrying act in its context, the way the
// auth middleware does for authorized requests.
func actorRequest(method, target string, act actor.Actor, form url.Values) *http.Request {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return req.WithContext(middleware.ContextWithActor(req.Context(), act))
}

func seedTestUser(t *testing.T, s *Stores, id, gymID, name string) user.User {
	t.Helper()
	u := user.User{
		ID:          id,
		GymID:       gymID,
		Name:        name,
		Gender:      "M",
		BirthDate:   "1994-02-11",
		PhoneNumber: "5551234",
		Email:       id + "@example.com",
		State:       user.StateActive,
		CreatedAt:   time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
	}
	if err := s.UserStore.Save(context.Background(), u); err != nil {
		t.Fatalf("seed user %s: %v", id, err)
	}
	return u
}

func TestHandleUsers_ListScopedToActorGym(t *testing.T) {
	s := newTestStores(t)
	seedTestUser(t, s, "10234567", "gym-1", "Ana Lopez")
	seedTestUser(t, s, "20345678", "gym-1", "Luis Mendez")
	seedTestUser(t, s, "30456789", "gym-2", "Outsider Row")

	w := httptest.NewRecorder()
	handleUsers(w, actorRequest("GET", "/admin/users", adminActor(), nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var result projections.UserListResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(result.Users) != 2 {
		t.Fatalf("got %d users, want 2", len(result.Users))
	}
	for _, u := range result.Users {
		if u.GymID != "gym-1" {
			t.Errorf("user %s leaked from gym %s", u.ID, u.GymID)
		}
	}
	if result.PageInfo.Total != 2 {
		t.Errorf("PageInfo.Total = %d, want 2", result.PageInfo.Total)
	}
}

func TestHandleUsers_CreateFormRedirectsWithFlash(t *testing.T) {
	s := newTestStores(t)

	form := url.Values{}
	form.Set("ID", "40567890")
	form.Set("Name", "pedro alvarez")
	form.Set("Gender", "M")
	form.Set("BirthDate", "1991-07-20")
	form.Set("PhoneNumber", "5559876")
	form.Set("Email", "pedro@example.com")

	req := actorRequest("POST", "/admin/users", adminActor(), form)
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()
	handleUsers(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303: %s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/admin/users" {
		t.Errorf("Location = %q, want /admin/users", loc)
	}

	var flash *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "gym_flash_success" {
			flash = c
		}
	}
	if flash == nil {
		t.Fatal("no success flash cookie set")
	}

	saved, err := s.UserStore.GetByID(context.Background(), "40567890")
	if err != nil {
		t.Fatalf("created user not found: %v", err)
	}
	if saved.Name != "Pedro Alvarez" {
		t.Errorf("Name = %q, want title-cased %q", saved.Name, "Pedro Alvarez")
	}
	if saved.GymID != "gym-1" {
		t.Errorf("GymID = %q, want the actor's gym", saved.GymID)
	}
	if saved.State != user.StateActive {
		t.Errorf("State = %q, want default %q", saved.State, user.StateActive)
	}
}

func TestHandleUsers_UpdateViaMethodOverride(t *testing.T) {
	s := newTestStores(t)
	seedTestUser(t, s, "10234567", "gym-1", "Ana Lopez")

	form := url.Values{}
	form.Set("_method", "PUT")
	form.Set("ID", "10234567")
	form.Set("Name", "ana maria lopez")
	form.Set("Gender", "F")
	form.Set("BirthDate", "1994-02-11")
	form.Set("PhoneNumber", "5551234")
	form.Set("Email", "10234567@example.com")
	form.Set("State", user.StateInactive)

	req := actorRequest("POST", "/admin/users", adminActor(), form)
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()
	handleUsers(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}
	saved, err := s.UserStore.GetByID(context.Background(), "10234567")
	if err != nil {
		t.Fatalf("updated user not found: %v", err)
	}
	if saved.Name != "Ana Maria Lopez" {
		t.Errorf("Name = %q after update", saved.Name)
	}
	if saved.State != user.StateInactive {
		t.Errorf("State = %q, want %q", saved.State, user.StateInactive)
	}
}

func TestHandleUsers_DeleteRejectsOtherGym(t *testing.T) {
	s := newTestStores(t)
	seedTestUser(t, s, "30456789", "gym-2", "Outsider Row")

	form := url.Values{}
	form.Set("_method", "DELETE")
	form.Set("ID", "30456789")

	w := httptest.NewRecorder()
	handleUsers(w, actorRequest("POST", "/admin/users", adminActor(), form))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if _, err := s.UserStore.GetByID(context.Background(), "30456789"); err != nil {
		t.Fatalf("user in another gym must survive: %v", err)
	}
}

func TestHandleUsers_DeleteOwnGym(t *testing.T) {
	s := newTestStores(t)
	seedTestUser(t, s, "10234567", "gym-1", "Ana Lopez")

	form := url.Values{}
	form.Set("_method", "DELETE")
	form.Set("ID", "10234567")

	req := actorRequest("POST", "/admin/users", adminActor(), form)
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()
	handleUsers(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}
	if _, err := s.UserStore.GetByID(context.Background(), "10234567"); err == nil {
		t.Fatal("user still present after delete")
	}
}

func TestHandleUsers_DeleteByPathID(t *testing.T) {
	s := newTestStores(t)
	seedTestUser(t, s, "10234567", "gym-1", "Ana Lopez")

	w := httptest.NewRecorder()
	handleUsers(w, actorRequest("DELETE", "/admin/users/10234567", adminActor(), nil))

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204: %s", w.Code, w.Body.String())
	}
	if _, err := s.UserStore.GetByID(context.Background(), "10234567"); err == nil {
		t.Fatal("user still present after delete by path id")
	}
}

func seedTestLogin(t *testing.T, s *Stores, email, password string) {
	t.Helper()
	ctx := context.Background()

	if err := s.StaffStore.SaveAdmin(ctx, adminActor()); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	l := login.Login{
		ID:        "login-1",
		Email:     email,
		ActorType: actor.RoleAdmin,
		ActorID:   "staff-1",
		CreatedAt: time.Now(),
	}
	if err := l.SetPassword(password); err != nil {
		t.Fatalf("set password: %v", err)
	}
	if err := s.LoginStore.Save(ctx, l); err != nil {
		t.Fatalf("seed login: %v", err)
	}
}

func TestHandleLogin_SuccessSetsSessionCookie(t *testing.T) {
	s := newTestStores(t)
	seedTestLogin(t, s, "valeria@iron.test", "TopSecret1!")

	form := url.Values{}
	form.Set("Email", "valeria@iron.test")
	form.Set("Password", "TopSecret1!")

	req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	handleLogin(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303: %s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/admin/dashboard" {
		t.Errorf("Location = %q, want /admin/dashboard", loc)
	}

	var token string
	for _, c := range w.Result().Cookies() {
		if c.Name == "gym_session" {
			token = c.Value
		}
	}
	if token == "" {
		t.Fatal("no session cookie set")
	}
	sess, ok := sessions.Get(token)
	if !ok {
		t.Fatal("session token not stored")
	}
	if sess.LoginID != "login-1" {
		t.Errorf("session LoginID = %q, want login-1", sess.LoginID)
	}
}

func TestHandleLogin_GetRedirectsLoggedInActor(t *testing.T) {
	newTestStores(t)

	w := httptest.NewRecorder()
	handleLogin(w, actorRequest("GET", "/login", adminActor(), nil))

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/admin/dashboard" {
		t.Errorf("Location = %q, want /admin/dashboard", loc)
	}
}

func TestHandleLogout(t *testing.T) {
	newTestStores(t)
	token, err := sessions.Create("login-1")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	req := httptest.NewRequest("POST", "/logout", nil)
	req.AddCookie(&http.Cookie{Name: "gym_session", Value: token})
	w := httptest.NewRecorder()
	handleLogout(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}
	if _, ok := sessions.Get(token); ok {
		t.Error("session survives logout")
	}

	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "gym_session" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("session cookie not cleared")
	}

	// Logging out twice is harmless.
	w2 := httptest.NewRecorder()
	handleLogout(w2, httptest.NewRequest("POST", "/logout", nil))
	if w2.Code != http.StatusSeeOther {
		t.Errorf("repeat logout status = %d, want 303", w2.Code)
	}
}

func TestHandleDashboard_JSON(t *testing.T) {
	s := newTestStores(t)
	ctx := context.Background()

	seedTestUser(t, s, "10234567", "gym-1", "Ana Lopez")
	inactive := seedTestUser(t, s, "20345678", "gym-1", "Luis Mendez")
	inactive.State = user.StateInactive
	if err := s.UserStore.Save(ctx, inactive); err != nil {
		t.Fatalf("flip state: %v", err)
	}

	m := membership.Membership{
		ID:         "m-1",
		UserID:     "10234567",
		Type:       "Monthly",
		Amount:     45.50,
		StartDate:  "2026-08-01",
		FinishDate: "2026-09-01",
	}
	if err := s.MembershipStore.Save(ctx, m); err != nil {
		t.Fatalf("seed membership: %v", err)
	}
	p := payment.Payment{
		ID:           "p-1",
		UserID:       "10234567",
		MembershipID: "m-1",
		Date:         "2026-08-31",
		Amount:       45.50,
		Method:       "cash",
		CreatedAt:    time.Now(),
	}
	if err := s.PaymentStore.Save(ctx, p); err != nil {
		t.Fatalf("seed payment: %v", err)
	}

	prevNow := timeNow
	timeNow = func() time.Time { return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC) }
	defer func() { timeNow = prevNow }()

	w := httptest.NewRecorder()
	handleDashboard(w, actorRequest("GET", "/admin/dashboard", adminActor(), nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	var result projections.DashboardResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if result.GymName != "Iron Temple" {
		t.Errorf("GymName = %q", result.GymName)
	}
	if result.ActiveUsers != 1 || result.InactiveUsers != 1 || result.TotalUsers != 2 {
		t.Errorf("user counts = %d/%d/%d, want 1/1/2",
			result.ActiveUsers, result.InactiveUsers, result.TotalUsers)
	}
	if result.PaidToday != 45.50 {
		t.Errorf("PaidToday = %v, want 45.50", result.PaidToday)
	}
	if len(result.PaymentsByMonth) != 12 {
		t.Fatalf("PaymentsByMonth has %d buckets, want 12", len(result.PaymentsByMonth))
	}
	if result.PaymentsByMonth[7] != 45.50 {
		t.Errorf("August bucket = %v, want 45.50", result.PaymentsByMonth[7])
	}
}

func TestHandlePaymentStats_EmptyGym(t *testing.T) {
	newTestStores(t)

	prevNow := timeNow
	timeNow = func() time.Time { return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC) }
	defer func() { timeNow = prevNow }()

	w := httptest.NewRecorder()
	handlePaymentStats(w, actorRequest("GET", "/admin/dashboard/payments", adminActor(), nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	var result projections.PaymentStatsResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if result.PaidToday != 0 || result.PaidThisYear != 0 {
		t.Errorf("sums = %+v, want zeroes", result)
	}
	for i, v := range result.PaymentsByMonth {
		if v != 0 {
			t.Errorf("month %d = %v, want 0", i+1, v)
		}
	}
}

func TestHandleUserStats(t *testing.T) {
	s := newTestStores(t)
	seedTestUser(t, s, "10234567", "gym-1", "Ana Lopez")

	prevNow := timeNow
	timeNow = func() time.Time { return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC) }
	defer func() { timeNow = prevNow }()

	w := httptest.NewRecorder()
	handleUserStats(w, actorRequest("GET", "/admin/dashboard/user-stats?period=this_month", adminActor(), nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	var result projections.UserStatsResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if result.Active != 1 || result.Total != 1 {
		t.Errorf("stats = %+v, want Active 1 Total 1", result)
	}
}

func TestHandleUserStats_UnknownPeriod(t *testing.T) {
	newTestStores(t)

	w := httptest.NewRecorder()
	handleUserStats(w, actorRequest("GET", "/admin/dashboard/user-stats?period=next_week", adminActor(), nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

// TestRegisterRoutes_ReceptionistSurface tests that coach attendance is
// not exposed under the receptionist prefix.
func TestRegisterRoutes_ReceptionistSurface(t *testing.T) {
	newTestStores(t)

	mux := http.NewServeMux()
	registerRoutes(mux)

	for _, path := range []string{
		"/receptionist/dashboard",
		"/receptionist/users",
		"/receptionist/memberships",
		"/receptionist/payments",
		"/receptionist/attendance-users",
	} {
		_, pattern := mux.Handler(httptest.NewRequest("GET", path, nil))
		if pattern != path {
			t.Errorf("%s resolves to pattern %q", path, pattern)
		}
	}

	_, pattern := mux.Handler(httptest.NewRequest("GET", "/receptionist/attendance-coaches", nil))
	if pattern == "/receptionist/attendance-coaches" || pattern == "/receptionist/attendance-coaches/" {
		t.Errorf("coach attendance is routed for receptionists as %q", pattern)
	}

	_, pattern = mux.Handler(httptest.NewRequest("GET", "/admin/attendance-coaches", nil))
	if pattern != "/admin/attendance-coaches" {
		t.Errorf("admin coach attendance resolves to pattern %q", pattern)
	}
}
