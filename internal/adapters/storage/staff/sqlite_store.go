package staff

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gymoffice/internal/adapters/storage"
	"gymoffice/internal/domain/actor"
)

// SQLiteStore stores staff in SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) SaveAdmin(ctx context.Context, a actor.Actor) error {
	return s.save(ctx, "admin", a)
}

func (s *SQLiteStore) SaveReceptionist(ctx context.Context, a actor.Actor) error {
	return s.save(ctx, "receptionist", a)
}

func (s *SQLiteStore) GetAdmin(ctx context.Context, id string) (actor.Actor, error) {
	return s.get(ctx, "admin", actor.RoleAdmin, id)
}

func (s *SQLiteStore) GetReceptionist(ctx context.Context, id string) (actor.Actor, error) {
	return s.get(ctx, "receptionist", actor.RoleReceptionist, id)
}

func (s *SQLiteStore) save(ctx context.Context, table string, a actor.Actor) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO `+table+` (id, gym_id, name, email)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			gym_id = excluded.gym_id,
			name = excluded.name,
			email = excluded.email`,
		a.ID, a.GymID, a.Name, a.Email)
	if err != nil {
		return fmt.Errorf("save %s %s: %w", table, a.ID, err)
	}
	return nil
}

func (s *SQLiteStore) get(ctx context.Context, table, role, id string) (actor.Actor, error) {
	a := actor.Actor{Role: role}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, gym_id, name, email FROM "+table+" WHERE id = ?", id).
		Scan(&a.ID, &a.GymID, &a.Name, &a.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return actor.Actor{}, ErrNotFound
	}
	if err != nil {
		return actor.Actor{}, fmt.Errorf("get %s %s: %w", table, id, err)
	}
	return a, nil
}
