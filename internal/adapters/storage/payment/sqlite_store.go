package payment

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gymoffice/internal/adapters/storage"
	domain "gymoffice/internal/domain/payment"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new PaymentStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const paymentColumns = "p.id, p.user_id, p.membership_id, p.date, p.amount, p.payment_method, p.created_at"

// GetByID retrieves a Payment by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Payment, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+paymentColumns+" FROM payment p WHERE p.id = ?", id)
	entity, err := scanPayment(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Payment{}, fmt.Errorf("payment not found: %w", err)
	}
	return entity, err
}

// Save persists a Payment to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Payment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	fields := []string{"id", "user_id", "membership_id", "date", "amount", "payment_method", "created_at"}
	placeholders := []string{"?", "?", "?", "?", "?", "?", "?"}
	updates := []string{
		"user_id=excluded.user_id",
		"membership_id=excluded.membership_id",
		"date=excluded.date",
		"amount=excluded.amount",
		"payment_method=excluded.payment_method",
	}

	query := fmt.Sprintf(
		"INSERT INTO payment (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.UserID,
		entity.MembershipID,
		entity.Date,
		entity.Amount,
		entity.Method,
		entity.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a Payment from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM payment WHERE id = ?", id)
	return err
}

// listWhereClause builds the WHERE clause and args for List/Count.
func listWhereClause(filter ListFilter) (string, []any) {
	where := " JOIN gym_user u ON u.id = p.user_id WHERE u.gym_id = ?"
	args := []any{filter.GymID}

	if filter.UserName != "" {
		where += " AND u.name LIKE ?"
		args = append(args, "%"+filter.UserName+"%")
	}
	if filter.IDLike != "" {
		where += " AND p.id LIKE ?"
		args = append(args, "%"+filter.IDLike+"%")
	}
	if filter.UserID != "" {
		where += " AND p.user_id = ?"
		args = append(args, filter.UserID)
	}
	if filter.Method != "" {
		where += " AND p.payment_method = ?"
		args = append(args, filter.Method)
	}
	if filter.Date != "" {
		where += " AND p.date = ?"
		args = append(args, filter.Date)
	}
	if filter.MembershipID != "" {
		where += " AND p.membership_id = ?"
		args = append(args, filter.MembershipID)
	}
	if filter.Search != "" {
		where += " AND (CAST(p.amount AS TEXT) LIKE ? OR u.name LIKE ?)"
		term := "%" + filter.Search + "%"
		args = append(args, term, term)
	}
	return where, args
}

// Count returns the total number of payments matching the filter.
// PRE: filter has a gym ID
// POST: Returns count >= 0
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	where, args := listWhereClause(filter)
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM payment p"+where, args...).Scan(&count)
	return count, err
}

// List retrieves Payments based on the filter, newest first.
// PRE: filter has a gym ID
// POST: Returns matching entities
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Payment, error) {
	where, args := listWhereClause(filter)
	query := "SELECT " + paymentColumns + " FROM payment p" + where +
		" ORDER BY p.date DESC, p.id"

	limit := filter.Limit
	if limit <= 0 {
		limit = 1000
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Payment
	for rows.Next() {
		entity, err := scanPayment(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, nil
}

// DistinctMethods returns the payment methods used in a gym.
// PRE: gymID is non-empty
// POST: Returns distinct payment_method values
func (s *SQLiteStore) DistinctMethods(ctx context.Context, gymID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT p.payment_method FROM payment p JOIN gym_user u ON u.id = p.user_id WHERE u.gym_id = ? ORDER BY p.payment_method",
		gymID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var methods []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}
	return methods, nil
}

// SumInRange totals payment amounts with business date in [from, to].
// Dates are YYYY-MM-DD text, so the range compare is lexicographic.
// PRE: from <= to
// POST: Returns 0 when no payments match
func (s *SQLiteStore) SumInRange(ctx context.Context, gymID, from, to string) (float64, error) {
	var total sql.NullFloat64
	err := s.db.QueryRowContext(ctx,
		"SELECT SUM(p.amount) FROM payment p JOIN gym_user u ON u.id = p.user_id WHERE u.gym_id = ? AND p.date >= ? AND p.date <= ?",
		gymID, from, to).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total.Float64, nil
}

// MonthlyTotals returns amount sums by month number for a year.
// PRE: year > 0
// POST: Returns a map with entries only for months that had payments
func (s *SQLiteStore) MonthlyTotals(ctx context.Context, gymID string, year int) (map[int]float64, error) {
	prefix := strconv.Itoa(year) + "-"
	rows, err := s.db.QueryContext(ctx,
		"SELECT substr(p.date, 6, 2) AS month, SUM(p.amount) FROM payment p JOIN gym_user u ON u.id = p.user_id WHERE u.gym_id = ? AND p.date LIKE ? GROUP BY month ORDER BY month",
		gymID, prefix+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[int]float64)
	for rows.Next() {
		var month string
		var sum float64
		if err := rows.Scan(&month, &sum); err != nil {
			return nil, err
		}
		if n, err := strconv.Atoi(month); err == nil && n >= 1 && n <= 12 {
			totals[n] = sum
		}
	}
	return totals, nil
}

// scanPayment extracts a Payment from a row scanner function.
func scanPayment(scan func(dest ...interface{}) error) (domain.Payment, error) {
	var entity domain.Payment
	var createdAt string
	err := scan(
		&entity.ID,
		&entity.UserID,
		&entity.MembershipID,
		&entity.Date,
		&entity.Amount,
		&entity.Method,
		&createdAt,
	)
	if err != nil {
		return domain.Payment{}, err
	}
	entity.CreatedAt, _ = parseTime(createdAt)
	return entity, nil
}

func parseTime(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		t, err := time.Parse(f, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time: %s", s)
}
