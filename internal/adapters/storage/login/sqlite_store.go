package login

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"gymoffice/internal/adapters/storage"
	"gymoffice/internal/domain/actor"
	domain "gymoffice/internal/domain/login"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new LoginStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const loginColumns = "id, email, password_hash, actor_type, actor_id, created_at"

// GetByID retrieves a Login by its ID.
// PRE: id is non-empty
// POST: Returns the entity or ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Login, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+loginColumns+" FROM login WHERE id = ?", id)
	entity, err := scanLogin(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Login{}, ErrNotFound
	}
	return entity, err
}

// GetByEmail retrieves a Login by email.
// PRE: email is non-empty
// POST: Returns the entity or ErrNotFound
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.Login, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+loginColumns+" FROM login WHERE email = ?", email)
	entity, err := scanLogin(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Login{}, ErrNotFound
	}
	return entity, err
}

// Save persists a Login to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Login) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	fields := []string{"id", "email", "password_hash", "actor_type", "actor_id", "created_at"}
	placeholders := []string{"?", "?", "?", "?", "?", "?"}
	updates := []string{
		"email=excluded.email",
		"password_hash=excluded.password_hash",
		"actor_type=excluded.actor_type",
		"actor_id=excluded.actor_id",
	}

	query := fmt.Sprintf(
		"INSERT INTO login (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.Email,
		entity.PasswordHash,
		entity.ActorType,
		entity.ActorID,
		entity.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a Login from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM login WHERE id = ?", id)
	return err
}

// Resolve loads the actor row a login points at.
// PRE: l was loaded from this store
// POST: Returns the resolved actor, or ErrActorNotFound if the
// reference dangles or the actor type is unknown
func (s *SQLiteStore) Resolve(ctx context.Context, l domain.Login) (actor.Actor, error) {
	var table string
	switch strings.ToLower(l.ActorType) {
	case actor.RoleAdmin:
		table = "admin"
	case actor.RoleReceptionist:
		table = "receptionist"
	case actor.RoleUser:
		table = "gym_user"
	default:
		return actor.Actor{}, ErrActorNotFound
	}

	a := actor.Actor{Role: strings.ToLower(l.ActorType)}
	row := s.db.QueryRowContext(ctx,
		"SELECT id, gym_id, name, email FROM "+table+" WHERE id = ?", l.ActorID)
	err := row.Scan(&a.ID, &a.GymID, &a.Name, &a.Email)
	if err == sql.ErrNoRows {
		return actor.Actor{}, ErrActorNotFound
	}
	if err != nil {
		return actor.Actor{}, err
	}
	return a, nil
}

// scanLogin extracts a Login from a row scanner function.
func scanLogin(scan func(dest ...interface{}) error) (domain.Login, error) {
	var entity domain.Login
	var createdAt string
	err := scan(
		&entity.ID,
		&entity.Email,
		&entity.PasswordHash,
		&entity.ActorType,
		&entity.ActorID,
		&createdAt,
	)
	if err != nil {
		return domain.Login{}, err
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
