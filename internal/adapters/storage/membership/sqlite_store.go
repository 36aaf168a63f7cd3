package membership

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"gymoffice/internal/adapters/storage"
	domain "gymoffice/internal/domain/membership"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new MembershipStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const membershipColumns = "m.id, m.user_id, m.type, m.amount, m.discount, m.start_date, m.finish_date"

// GetByID retrieves a Membership by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Membership, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+membershipColumns+" FROM membership m WHERE m.id = ?", id)
	entity, err := scanMembership(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Membership{}, fmt.Errorf("membership not found: %w", err)
	}
	return entity, err
}

// Save persists a Membership to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Membership) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	fields := []string{"id", "user_id", "type", "amount", "discount", "start_date", "finish_date"}
	placeholders := []string{"?", "?", "?", "?", "?", "?", "?"}
	updates := []string{
		"user_id=excluded.user_id",
		"type=excluded.type",
		"amount=excluded.amount",
		"discount=excluded.discount",
		"start_date=excluded.start_date",
		"finish_date=excluded.finish_date",
	}

	query := fmt.Sprintf(
		"INSERT INTO membership (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.UserID,
		entity.Type,
		entity.Amount,
		entity.Discount,
		entity.StartDate,
		entity.FinishDate,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a Membership from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM membership WHERE id = ?", id)
	return err
}

// listWhereClause builds the WHERE clause and args for List/Count.
// The join to gym_user scopes every query to the acting gym.
func listWhereClause(filter ListFilter) (string, []any) {
	where := " JOIN gym_user u ON u.id = m.user_id WHERE u.gym_id = ?"
	args := []any{filter.GymID}

	if filter.UserName != "" {
		where += " AND u.name LIKE ?"
		args = append(args, "%"+filter.UserName+"%")
	}
	if filter.IDLike != "" {
		where += " AND m.id LIKE ?"
		args = append(args, "%"+filter.IDLike+"%")
	}
	if filter.UserID != "" {
		where += " AND m.user_id = ?"
		args = append(args, filter.UserID)
	}
	if filter.Type != "" {
		where += " AND m.type = ?"
		args = append(args, filter.Type)
	}
	if filter.StartDate != "" {
		where += " AND m.start_date = ?"
		args = append(args, filter.StartDate)
	}
	if filter.FinishDate != "" {
		where += " AND m.finish_date = ?"
		args = append(args, filter.FinishDate)
	}
	if filter.Search != "" {
		where += " AND (CAST(m.amount AS TEXT) LIKE ? OR CAST(m.discount AS TEXT) LIKE ? OR u.name LIKE ?)"
		term := "%" + filter.Search + "%"
		args = append(args, term, term, term)
	}
	return where, args
}

// Count returns the total number of memberships matching the filter.
// PRE: filter has a gym ID
// POST: Returns count >= 0
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	where, args := listWhereClause(filter)
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM membership m"+where, args...).Scan(&count)
	return count, err
}

// List retrieves Memberships based on the filter, newest start first.
// PRE: filter has a gym ID
// POST: Returns matching entities
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Membership, error) {
	where, args := listWhereClause(filter)
	query := "SELECT " + membershipColumns + " FROM membership m" + where +
		" ORDER BY m.start_date DESC, m.id"

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

	var results []domain.Membership
	for rows.Next() {
		entity, err := scanMembership(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, nil
}

// DistinctTypes returns the membership types present in a gym.
// PRE: gymID is non-empty
// POST: Returns distinct type values
func (s *SQLiteStore) DistinctTypes(ctx context.Context, gymID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT m.type FROM membership m JOIN gym_user u ON u.id = m.user_id WHERE u.gym_id = ? ORDER BY m.type",
		gymID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

// ExistsInGym reports whether a membership belongs to a user of the gym.
// PRE: id and gymID are non-empty
// POST: Returns true only if the membership's owner is in the gym
func (s *SQLiteStore) ExistsInGym(ctx context.Context, id, gymID string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM membership m JOIN gym_user u ON u.id = m.user_id WHERE m.id = ? AND u.gym_id = ?",
		id, gymID).Scan(&count)
	return count > 0, err
}

// scanMembership extracts a Membership from a row scanner function.
func scanMembership(scan func(dest ...interface{}) error) (domain.Membership, error) {
	var entity domain.Membership
	err := scan(
		&entity.ID,
		&entity.UserID,
		&entity.Type,
		&entity.Amount,
		&entity.Discount,
		&entity.StartDate,
		&entity.FinishDate,
	)
	if err != nil {
		return domain.Membership{}, err
	}
	return entity, nil
}
