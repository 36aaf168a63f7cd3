package gym

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"gymoffice/internal/adapters/storage"
	domain "gymoffice/internal/domain/gym"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new GymStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Gym by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Gym, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, address, welcome FROM gym WHERE id = ?", id)

	var entity domain.Gym
	err := row.Scan(&entity.ID, &entity.Name, &entity.Address, &entity.Welcome)
	if err == sql.ErrNoRows {
		return domain.Gym{}, fmt.Errorf("gym not found: %w", err)
	}
	return entity, err
}

// Save persists a Gym to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Gym) error {
	fields := []string{"id", "name", "address", "welcome"}
	placeholders := []string{"?", "?", "?", "?"}
	updates := []string{"name=excluded.name", "address=excluded.address", "welcome=excluded.welcome"}

	query := fmt.Sprintf(
		"INSERT INTO gym (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	_, err := s.db.ExecContext(ctx, query, entity.ID, entity.Name, entity.Address, entity.Welcome)
	return err
}

// List retrieves all gyms ordered by name.
// PRE: none
// POST: Returns all gyms
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Gym, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, address, welcome FROM gym ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Gym
	for rows.Next() {
		var entity domain.Gym
		if err := rows.Scan(&entity.ID, &entity.Name, &entity.Address, &entity.Welcome); err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, nil
}
