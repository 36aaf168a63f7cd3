package orchestrators

import (
	"context"
	"errors"
	"time"

	"gymoffice/internal/adapters/email"
	"gymoffice/internal/domain/actor"
	"gymoffice/internal/domain/attendance"
	"gymoffice/internal/domain/coach"
	"gymoffice/internal/domain/login"
	"gymoffice/internal/domain/membership"
	"gymoffice/internal/domain/payment"
	"gymoffice/internal/domain/user"
)

var errMockNotFound = errors.New("not found")

// fixedNow returns a stable timestamp for deterministic tests.
func fixedNow() time.Time {
	return time.Date(2026, 8, 31, 10, 30, 0, 0, time.UTC)
}

// mockUserStore implements UserStore for testing.
type mockUserStore struct {
	users map[string]user.User
}

func newMockUserStore(seed ...user.User) *mockUserStore {
	m := &mockUserStore{users: make(map[string]user.User)}
	for _, u := range seed {
		m.users[u.ID] = u
	}
	return m
}

func (m *mockUserStore) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return user.User{}, errMockNotFound
	}
	return u, nil
}

func (m *mockUserStore) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, errMockNotFound
}

func (m *mockUserStore) Save(_ context.Context, u user.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockUserStore) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

// mockMembershipStore implements MembershipStore for testing. gyms maps
// membership id to the owning gym id.
type mockMembershipStore struct {
	memberships map[string]membership.Membership
	gyms        map[string]string
}

func newMockMembershipStore() *mockMembershipStore {
	return &mockMembershipStore{
		memberships: make(map[string]membership.Membership),
		gyms:        make(map[string]string),
	}
}

func (m *mockMembershipStore) GetByID(_ context.Context, id string) (membership.Membership, error) {
	ms, ok := m.memberships[id]
	if !ok {
		return membership.Membership{}, errMockNotFound
	}
	return ms, nil
}

func (m *mockMembershipStore) Save(_ context.Context, ms membership.Membership) error {
	m.memberships[ms.ID] = ms
	return nil
}

func (m *mockMembershipStore) Delete(_ context.Context, id string) error {
	delete(m.memberships, id)
	return nil
}

func (m *mockMembershipStore) ExistsInGym(_ context.Context, id, gymID string) (bool, error) {
	return m.gyms[id] == gymID, nil
}

// mockPaymentStore implements PaymentStore for testing.
type mockPaymentStore struct {
	payments map[string]payment.Payment
}

func newMockPaymentStore() *mockPaymentStore {
	return &mockPaymentStore{payments: make(map[string]payment.Payment)}
}

func (m *mockPaymentStore) GetByID(_ context.Context, id string) (payment.Payment, error) {
	p, ok := m.payments[id]
	if !ok {
		return payment.Payment{}, errMockNotFound
	}
	return p, nil
}

func (m *mockPaymentStore) Save(_ context.Context, p payment.Payment) error {
	m.payments[p.ID] = p
	return nil
}

func (m *mockPaymentStore) Delete(_ context.Context, id string) error {
	delete(m.payments, id)
	return nil
}

// mockUserAttendanceStore implements UserAttendanceStore for testing.
type mockUserAttendanceStore struct {
	records map[string]attendance.UserAttendance
}

func newMockUserAttendanceStore() *mockUserAttendanceStore {
	return &mockUserAttendanceStore{records: make(map[string]attendance.UserAttendance)}
}

func (m *mockUserAttendanceStore) GetByID(_ context.Context, id string) (attendance.UserAttendance, error) {
	a, ok := m.records[id]
	if !ok {
		return attendance.UserAttendance{}, errMockNotFound
	}
	return a, nil
}

func (m *mockUserAttendanceStore) Save(_ context.Context, a attendance.UserAttendance) error {
	m.records[a.ID] = a
	return nil
}

func (m *mockUserAttendanceStore) Delete(_ context.Context, id string) error {
	delete(m.records, id)
	return nil
}

// mockCoachAttendanceStore implements CoachAttendanceStore for testing.
type mockCoachAttendanceStore struct {
	records map[string]attendance.CoachAttendance
}

func newMockCoachAttendanceStore() *mockCoachAttendanceStore {
	return &mockCoachAttendanceStore{records: make(map[string]attendance.CoachAttendance)}
}

func (m *mockCoachAttendanceStore) GetByID(_ context.Context, id string) (attendance.CoachAttendance, error) {
	a, ok := m.records[id]
	if !ok {
		return attendance.CoachAttendance{}, errMockNotFound
	}
	return a, nil
}

func (m *mockCoachAttendanceStore) Save(_ context.Context, a attendance.CoachAttendance) error {
	m.records[a.ID] = a
	return nil
}

func (m *mockCoachAttendanceStore) Delete(_ context.Context, id string) error {
	delete(m.records, id)
	return nil
}

// mockCoachStore implements CoachStore for testing.
type mockCoachStore struct {
	coaches map[string]coach.Coach
}

func newMockCoachStore(seed ...coach.Coach) *mockCoachStore {
	m := &mockCoachStore{coaches: make(map[string]coach.Coach)}
	for _, c := range seed {
		m.coaches[c.ID] = c
	}
	return m
}

func (m *mockCoachStore) GetByID(_ context.Context, id string) (coach.Coach, error) {
	c, ok := m.coaches[id]
	if !ok {
		return coach.Coach{}, errMockNotFound
	}
	return c, nil
}

func (m *mockCoachStore) Save(_ context.Context, c coach.Coach) error {
	m.coaches[c.ID] = c
	return nil
}

func (m *mockCoachStore) ListByGym(_ context.Context, gymID string) ([]coach.Coach, error) {
	var out []coach.Coach
	for _, c := range m.coaches {
		if c.GymID == gymID {
			out = append(out, c)
		}
	}
	return out, nil
}

// mockLoginStore implements LoginStoreForAuth for testing.
type mockLoginStore struct {
	logins map[string]login.Login // keyed by email
	actors map[string]actor.Actor // keyed by actor id
}

func newMockLoginStore() *mockLoginStore {
	return &mockLoginStore{
		logins: make(map[string]login.Login),
		actors: make(map[string]actor.Actor),
	}
}

func (m *mockLoginStore) GetByEmail(_ context.Context, email string) (login.Login, error) {
	l, ok := m.logins[email]
	if !ok {
		return login.Login{}, errMockNotFound
	}
	return l, nil
}

func (m *mockLoginStore) Resolve(_ context.Context, l login.Login) (actor.Actor, error) {
	a, ok := m.actors[l.ActorID]
	if !ok {
		return actor.Actor{}, errMockNotFound
	}
	return a, nil
}

// addLogin seeds a login/actor pair with a real bcrypt hash.
func (m *mockLoginStore) addLogin(id, email, password, role, actorID, gymID string) {
	l := login.Login{ID: id, Email: email, ActorType: role, ActorID: actorID}
	if err := l.SetPassword(password); err != nil {
		panic(err)
	}
	m.logins[email] = l
	m.actors[actorID] = actor.Actor{ID: actorID, Role: role, Name: "Test Actor", Email: email, GymID: gymID}
}

// mockEmailSender implements email.Sender and records sent requests.
type mockEmailSender struct {
	sent    []email.SendRequest
	sendErr error
}

func (m *mockEmailSender) Send(_ context.Context, req email.SendRequest) (email.SendResult, error) {
	if m.sendErr != nil {
		return email.SendResult{}, m.sendErr
	}
	m.sent = append(m.sent, req)
	return email.SendResult{MessageID: "mock-email-1", SentAt: fixedNow()}, nil
}
