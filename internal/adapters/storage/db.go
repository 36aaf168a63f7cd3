package storage

import (
	"database/sql"
	"fmt"
)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Create tables
	schema := `
	CREATE TABLE IF NOT EXISTS gym (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		welcome TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS login (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		actor_type TEXT NOT NULL,
		actor_id TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS admin (
		id TEXT PRIMARY KEY,
		gym_id TEXT NOT NULL,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		FOREIGN KEY (gym_id) REFERENCES gym(id)
	);

	CREATE TABLE IF NOT EXISTS receptionist (
		id TEXT PRIMARY KEY,
		gym_id TEXT NOT NULL,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		FOREIGN KEY (gym_id) REFERENCES gym(id)
	);

	CREATE TABLE IF NOT EXISTS gym_user (
		id TEXT PRIMARY KEY,
		gym_id TEXT NOT NULL,
		name TEXT NOT NULL,
		gender TEXT NOT NULL,
		birth_date TEXT NOT NULL,
		phone_number TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		state TEXT NOT NULL,
		created_at TEXT NOT NULL,
		FOREIGN KEY (gym_id) REFERENCES gym(id)
	);

	CREATE TABLE IF NOT EXISTS membership (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		type TEXT NOT NULL,
		amount REAL NOT NULL,
		discount REAL NOT NULL DEFAULT 0,
		start_date TEXT NOT NULL,
		finish_date TEXT NOT NULL,
		FOREIGN KEY (user_id) REFERENCES gym_user(id)
	);

	CREATE TABLE IF NOT EXISTS payment (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		membership_id TEXT NOT NULL,
		date TEXT NOT NULL,
		amount REAL NOT NULL,
		payment_method TEXT NOT NULL,
		created_at TEXT NOT NULL,
		FOREIGN KEY (user_id) REFERENCES gym_user(id),
		FOREIGN KEY (membership_id) REFERENCES membership(id)
	);

	CREATE TABLE IF NOT EXISTS attendance_user (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		date TEXT NOT NULL,
		check_in TEXT NOT NULL,
		check_out TEXT,
		FOREIGN KEY (user_id) REFERENCES gym_user(id)
	);

	CREATE TABLE IF NOT EXISTS coach (
		id TEXT PRIMARY KEY,
		gym_id TEXT NOT NULL,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone_number TEXT NOT NULL DEFAULT '',
		specialty TEXT NOT NULL DEFAULT '',
		FOREIGN KEY (gym_id) REFERENCES gym(id)
	);

	CREATE TABLE IF NOT EXISTS attendance_coach (
		id TEXT PRIMARY KEY,
		coach_id TEXT NOT NULL,
		date TEXT NOT NULL,
		check_in TEXT NOT NULL,
		check_out TEXT,
		FOREIGN KEY (coach_id) REFERENCES coach(id)
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
