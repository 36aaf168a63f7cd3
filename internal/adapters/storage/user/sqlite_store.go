package user

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"gymoffice/internal/adapters/storage"
	domain "gymoffice/internal/domain/user"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new UserStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const userColumns = "id, gym_id, name, gender, birth_date, phone_number, email, state, created_at"

// GetByID retrieves a User by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM gym_user WHERE id = ?", id)
	entity, err := scanUser(row.Scan)
	if err == sql.ErrNoRows {
		return domain.User{}, fmt.Errorf("user not found: %w", err)
	}
	return entity, err
}

// GetByEmail retrieves a User by email.
// PRE: email is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM gym_user WHERE email = ?", email)
	entity, err := scanUser(row.Scan)
	if err == sql.ErrNoRows {
		return domain.User{}, fmt.Errorf("user not found: %w", err)
	}
	return entity, err
}

// Save persists a User to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.User) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	fields := []string{"id", "gym_id", "name", "gender", "birth_date", "phone_number", "email", "state", "created_at"}
	placeholders := []string{"?", "?", "?", "?", "?", "?", "?", "?", "?"}
	updates := []string{
		"name=excluded.name",
		"gender=excluded.gender",
		"birth_date=excluded.birth_date",
		"phone_number=excluded.phone_number",
		"email=excluded.email",
		"state=excluded.state",
	}

	query := fmt.Sprintf(
		"INSERT INTO gym_user (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.GymID,
		entity.Name,
		entity.Gender,
		entity.BirthDate,
		entity.PhoneNumber,
		entity.Email,
		entity.State,
		entity.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a User from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM gym_user WHERE id = ?", id)
	return err
}

// listWhereClause builds the WHERE clause and args for List/Count queries.
func listWhereClause(filter ListFilter) (string, []any) {
	where := " WHERE gym_id = ?"
	args := []any{filter.GymID}

	if filter.State != "" {
		where += " AND LOWER(state) = LOWER(?)"
		args = append(args, filter.State)
	}
	if filter.Gender != "" {
		where += " AND gender = ?"
		args = append(args, filter.Gender)
	}
	if filter.IDLike != "" {
		where += " AND id LIKE ?"
		args = append(args, "%"+filter.IDLike+"%")
	}
	if filter.Search != "" {
		clause := "(name LIKE ? OR email LIKE ? OR phone_number LIKE ? OR state LIKE ? OR gender LIKE ?"
		term := "%" + filter.Search + "%"
		args = append(args, term, term, term, term, term)
		if filter.SearchDate != "" {
			clause += " OR birth_date = ?"
			args = append(args, filter.SearchDate)
		}
		clause += ")"
		where += " AND " + clause
	} else if filter.SearchDate != "" {
		where += " AND birth_date = ?"
		args = append(args, filter.SearchDate)
	}
	return where, args
}

// Count returns the total number of users matching the filter.
// PRE: filter has a gym ID
// POST: Returns count >= 0
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	where, args := listWhereClause(filter)
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM gym_user"+where, args...).Scan(&count)
	return count, err
}

// List retrieves Users based on the filter, ordered by ID.
// PRE: filter has a gym ID
// POST: Returns matching entities
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.User, error) {
	where, args := listWhereClause(filter)
	query := "SELECT " + userColumns + " FROM gym_user" + where + " ORDER BY id"

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

	var results []domain.User
	for rows.Next() {
		entity, err := scanUser(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, nil
}

// ListByGym retrieves every user of a gym ordered by name, for form
// dropdowns and cross-checks.
// PRE: gymID is non-empty
// POST: Returns all users of the gym
func (s *SQLiteStore) ListByGym(ctx context.Context, gymID string) ([]domain.User, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM gym_user WHERE gym_id = ? ORDER BY name", gymID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.User
	for rows.Next() {
		entity, err := scanUser(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, nil
}

// CountByState counts users of a gym in a given state, optionally
// windowed by creation time.
// PRE: gymID and state are non-empty
// POST: Returns count >= 0
func (s *SQLiteStore) CountByState(ctx context.Context, gymID, state string, from, to time.Time) (int, error) {
	query := "SELECT COUNT(*) FROM gym_user WHERE gym_id = ? AND LOWER(state) = LOWER(?)"
	args := []any{gymID, state}
	if !from.IsZero() {
		query += " AND created_at >= ?"
		args = append(args, from.Format(time.RFC3339Nano))
	}
	if !to.IsZero() {
		query += " AND created_at < ?"
		args = append(args, to.Format(time.RFC3339Nano))
	}
	var count int
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

// CountsByMonth returns how many users were registered in each month,
// oldest first. Months with no registrations are absent.
// PRE: gymID is non-empty
// POST: Returns one bucket per month with registrations
func (s *SQLiteStore) CountsByMonth(ctx context.Context, gymID string) ([]MonthCount, error) {
	// created_at is stored as RFC 3339 text, so the first seven
	// characters are the YYYY-MM bucket.
	rows, err := s.db.QueryContext(ctx,
		"SELECT substr(created_at, 1, 7) AS month, COUNT(*) FROM gym_user WHERE gym_id = ? GROUP BY month ORDER BY month",
		gymID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []MonthCount
	for rows.Next() {
		var mc MonthCount
		if err := rows.Scan(&mc.Month, &mc.Total); err != nil {
			return nil, err
		}
		results = append(results, mc)
	}
	return results, nil
}

// scanUser extracts a User from a row scanner function.
func scanUser(scan func(dest ...interface{}) error) (domain.User, error) {
	var entity domain.User
	var createdAt string
	err := scan(
		&entity.ID,
		&entity.GymID,
		&entity.Name,
		&entity.Gender,
		&entity.BirthDate,
		&entity.PhoneNumber,
		&entity.Email,
		&entity.State,
		&createdAt,
	)
	if err != nil {
		return domain.User{}, err
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
