package coach

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gymoffice/internal/adapters/storage"
	domain "gymoffice/internal/domain/coach"
)

const coachColumns = "id, gym_id, name, email, phone_number, specialty"

// SQLiteStore stores coaches in SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Coach, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+coachColumns+" FROM coach WHERE id = ?", id)

	value, err := scanCoach(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Coach{}, ErrNotFound
	}
	if err != nil {
		return domain.Coach{}, fmt.Errorf("get coach %s: %w", id, err)
	}
	return value, nil
}

func (s *SQLiteStore) Save(ctx context.Context, value domain.Coach) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO coach (id, gym_id, name, email, phone_number, specialty)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			gym_id = excluded.gym_id,
			name = excluded.name,
			email = excluded.email,
			phone_number = excluded.phone_number,
			specialty = excluded.specialty`,
		value.ID, value.GymID, value.Name, value.Email, value.PhoneNumber, value.Specialty)
	if err != nil {
		return fmt.Errorf("save coach %s: %w", value.ID, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM coach WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete coach %s: %w", id, err)
	}
	return nil
}

func (s *SQLiteStore) ListByGym(ctx context.Context, gymID string) ([]domain.Coach, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+coachColumns+" FROM coach WHERE gym_id = ? ORDER BY name", gymID)
	if err != nil {
		return nil, fmt.Errorf("list coaches: %w", err)
	}
	defer rows.Close()

	var values []domain.Coach
	for rows.Next() {
		value, err := scanCoach(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan coach: %w", err)
		}
		values = append(values, value)
	}
	return values, rows.Err()
}

func scanCoach(scan func(dest ...interface{}) error) (domain.Coach, error) {
	var value domain.Coach
	err := scan(&value.ID, &value.GymID, &value.Name, &value.Email,
		&value.PhoneNumber, &value.Specialty)
	if err != nil {
		return domain.Coach{}, err
	}
	return value, nil
}
