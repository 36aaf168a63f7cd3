package payment

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"gymoffice/internal/adapters/storage"
	domain "gymoffice/internal/domain/payment"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// A second pool connection would get its own empty in-memory DB.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("failed to init db: %v", err)
	}

	// Payments are gym-scoped through the owning user.
	fixtures := []string{
		"INSERT INTO gym (id, name) VALUES ('gym-1', 'Gym One')",
		"INSERT INTO gym (id, name) VALUES ('gym-2', 'Gym Two')",
		"INSERT INTO gym_user (id, gym_id, name, gender, birth_date, phone_number, email, state, created_at) VALUES ('10234567', 'gym-1', 'Ana Garcia', 'F', '1994-03-12', '555-0101', 'ana@example.com', 'Activo', '2026-01-01T00:00:00Z')",
		"INSERT INTO gym_user (id, gym_id, name, gender, birth_date, phone_number, email, state, created_at) VALUES ('20345678', 'gym-2', 'Luis Mendez', 'M', '1988-11-02', '555-0102', 'luis@example.com', 'Activo', '2026-01-01T00:00:00Z')",
		"INSERT INTO membership (id, user_id, type, amount, discount, start_date, finish_date) VALUES ('m-1', '10234567', 'Monthly', 45, 0, '2026-01-01', '2026-12-31')",
		"INSERT INTO membership (id, user_id, type, amount, discount, start_date, finish_date) VALUES ('m-2', '20345678', 'Monthly', 45, 0, '2026-01-01', '2026-12-31')",
	}
	for _, q := range fixtures {
		if _, err := db.Exec(q); err != nil {
			t.Fatalf("fixture failed: %v", err)
		}
	}
	return NewSQLiteStore(db)
}

func testPayment(id, userID, membershipID, date string, amount float64) domain.Payment {
	return domain.Payment{
		ID:           id,
		UserID:       userID,
		MembershipID: membershipID,
		Date:         date,
		Amount:       amount,
		Method:       "cash",
		CreatedAt:    time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
	}
}

func seedPayments(t *testing.T, store *SQLiteStore) {
	t.Helper()
	ctx := context.Background()
	payments := []domain.Payment{
		testPayment("p-1", "10234567", "m-1", "2026-01-15", 100),
		testPayment("p-2", "10234567", "m-1", "2026-03-10", 200),
		testPayment("p-3", "10234567", "m-1", "2026-08-31", 50),
		// Previous year, must stay out of 2026 totals
		testPayment("p-4", "10234567", "m-1", "2025-08-31", 999),
		// Another tenant entirely
		testPayment("p-5", "20345678", "m-2", "2026-08-31", 999),
	}
	for _, p := range payments {
		if err := store.Save(ctx, p); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}
}

// TestSQLiteStore_SumInRange tests the date-windowed tenant-scoped sums.
func TestSQLiteStore_SumInRange(t *testing.T) {
	store := newTestStore(t)
	seedPayments(t, store)
	ctx := context.Background()

	tests := []struct {
		name     string
		from, to string
		want     float64
	}{
		{"single day", "2026-08-31", "2026-08-31", 50},
		{"year to date", "2026-01-01", "2026-08-31", 350},
		{"month", "2026-03-01", "2026-03-31", 200},
		{"empty window", "2026-04-01", "2026-04-30", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.SumInRange(ctx, "gym-1", tt.from, tt.to)
			if err != nil {
				t.Fatalf("SumInRange failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("SumInRange(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

// TestSQLiteStore_MonthlyTotals tests the per-month sums for one year.
func TestSQLiteStore_MonthlyTotals(t *testing.T) {
	store := newTestStore(t)
	seedPayments(t, store)

	totals, err := store.MonthlyTotals(context.Background(), "gym-1", 2026)
	if err != nil {
		t.Fatalf("MonthlyTotals failed: %v", err)
	}
	want := map[int]float64{1: 100, 3: 200, 8: 50}
	if len(totals) != len(want) {
		t.Fatalf("got %d months %v, want %d", len(totals), totals, len(want))
	}
	for month, sum := range want {
		if totals[month] != sum {
			t.Errorf("month %d = %v, want %v", month, totals[month], sum)
		}
	}
}

// TestSQLiteStore_ListByGym tests tenant scoping of the list queries.
func TestSQLiteStore_ListByGym(t *testing.T) {
	store := newTestStore(t)
	seedPayments(t, store)
	ctx := context.Background()

	payments, err := store.List(ctx, ListFilter{GymID: "gym-1"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(payments) != 4 {
		t.Fatalf("expected 4 payments in gym-1, got %d", len(payments))
	}
	for _, p := range payments {
		if p.UserID != "10234567" {
			t.Errorf("payment %s belongs to %s", p.ID, p.UserID)
		}
	}

	count, err := store.Count(ctx, ListFilter{GymID: "gym-2"})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 payment in gym-2, got %d", count)
	}
}

// TestSQLiteStore_DistinctMethods tests the methods dropdown source.
func TestSQLiteStore_DistinctMethods(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	card := testPayment("p-1", "10234567", "m-1", "2026-08-01", 45)
	card.Method = "card"
	cash := testPayment("p-2", "10234567", "m-1", "2026-08-02", 45)
	other := testPayment("p-3", "20345678", "m-2", "2026-08-03", 45)
	other.Method = "transfer"
	for _, p := range []domain.Payment{card, cash, other} {
		if err := store.Save(ctx, p); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	methods, err := store.DistinctMethods(ctx, "gym-1")
	if err != nil {
		t.Fatalf("DistinctMethods failed: %v", err)
	}
	if len(methods) != 2 {
		t.Fatalf("got %v, want card and cash only", methods)
	}
	if methods[0] != "card" || methods[1] != "cash" {
		t.Errorf("got %v, want [card cash]", methods)
	}
}
