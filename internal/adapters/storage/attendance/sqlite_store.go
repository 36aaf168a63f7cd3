package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gymoffice/internal/adapters/storage"
	domain "gymoffice/internal/domain/attendance"
)

const userColumns = "a.id, a.user_id, a.date, a.check_in, a.check_out"

const coachColumns = "a.id, a.coach_id, a.date, a.check_in, a.check_out"

// SQLiteStore stores user attendance in SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.UserAttendance, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM attendance_user a WHERE a.id = ?", id)

	value, err := scanUserAttendance(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.UserAttendance{}, ErrNotFound
	}
	if err != nil {
		return domain.UserAttendance{}, fmt.Errorf("get attendance %s: %w", id, err)
	}
	return value, nil
}

func (s *SQLiteStore) Save(ctx context.Context, value domain.UserAttendance) error {
	checkOut := sql.NullString{String: value.CheckOut, Valid: value.CheckOut != ""}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO attendance_user (id, user_id, date, check_in, check_out)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			date = excluded.date,
			check_in = excluded.check_in,
			check_out = excluded.check_out`,
		value.ID, value.UserID, value.Date, value.CheckIn, checkOut)
	if err != nil {
		return fmt.Errorf("save attendance %s: %w", value.ID, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM attendance_user WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete attendance %s: %w", id, err)
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.UserAttendance, error) {
	where, args := userWhereClause(filter)

	limit := filter.Limit
	if limit <= 0 {
		limit = 1000
	}
	args = append(args, limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM attendance_user a"+where+
			" ORDER BY a.date DESC, a.check_in DESC, a.id LIMIT ? OFFSET ?", args...)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer rows.Close()

	var values []domain.UserAttendance
	for rows.Next() {
		value, err := scanUserAttendance(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		values = append(values, value)
	}
	return values, rows.Err()
}

func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	where, args := userWhereClause(filter)

	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM attendance_user a"+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count attendance: %w", err)
	}
	return count, nil
}

func userWhereClause(filter ListFilter) (string, []interface{}) {
	where := " JOIN gym_user u ON u.id = a.user_id WHERE u.gym_id = ?"
	args := []interface{}{filter.GymID}

	if filter.Date != "" {
		where += " AND a.date = ?"
		args = append(args, filter.Date)
	}
	if filter.SubjectID != "" {
		where += " AND a.user_id = ?"
		args = append(args, filter.SubjectID)
	}
	if filter.SubjectName != "" {
		where += " AND u.name LIKE ?"
		args = append(args, "%"+filter.SubjectName+"%")
	}
	return where, args
}

func scanUserAttendance(scan func(dest ...interface{}) error) (domain.UserAttendance, error) {
	var value domain.UserAttendance
	var checkOut sql.NullString

	err := scan(&value.ID, &value.UserID, &value.Date, &value.CheckIn, &checkOut)
	if err != nil {
		return domain.UserAttendance{}, err
	}
	value.CheckOut = checkOut.String
	return value, nil
}

// CoachSQLiteStore stores coach attendance in SQLite.
type CoachSQLiteStore struct {
	db storage.SQLDB
}

func NewCoachSQLiteStore(db storage.SQLDB) *CoachSQLiteStore {
	return &CoachSQLiteStore{db: db}
}

func (s *CoachSQLiteStore) GetByID(ctx context.Context, id string) (domain.CoachAttendance, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+coachColumns+" FROM attendance_coach a WHERE a.id = ?", id)

	value, err := scanCoachAttendance(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.CoachAttendance{}, ErrNotFound
	}
	if err != nil {
		return domain.CoachAttendance{}, fmt.Errorf("get coach attendance %s: %w", id, err)
	}
	return value, nil
}

func (s *CoachSQLiteStore) Save(ctx context.Context, value domain.CoachAttendance) error {
	checkOut := sql.NullString{String: value.CheckOut, Valid: value.CheckOut != ""}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO attendance_coach (id, coach_id, date, check_in, check_out)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			coach_id = excluded.coach_id,
			date = excluded.date,
			check_in = excluded.check_in,
			check_out = excluded.check_out`,
		value.ID, value.CoachID, value.Date, value.CheckIn, checkOut)
	if err != nil {
		return fmt.Errorf("save coach attendance %s: %w", value.ID, err)
	}
	return nil
}

func (s *CoachSQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM attendance_coach WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete coach attendance %s: %w", id, err)
	}
	return nil
}

func (s *CoachSQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.CoachAttendance, error) {
	where, args := coachWhereClause(filter)

	limit := filter.Limit
	if limit <= 0 {
		limit = 1000
	}
	args = append(args, limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+coachColumns+" FROM attendance_coach a"+where+
			" ORDER BY a.date DESC, a.check_in DESC, a.id LIMIT ? OFFSET ?", args...)
	if err != nil {
		return nil, fmt.Errorf("list coach attendance: %w", err)
	}
	defer rows.Close()

	var values []domain.CoachAttendance
	for rows.Next() {
		value, err := scanCoachAttendance(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan coach attendance: %w", err)
		}
		values = append(values, value)
	}
	return values, rows.Err()
}

func (s *CoachSQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	where, args := coachWhereClause(filter)

	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM attendance_coach a"+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count coach attendance: %w", err)
	}
	return count, nil
}

func coachWhereClause(filter ListFilter) (string, []interface{}) {
	where := " JOIN coach c ON c.id = a.coach_id WHERE c.gym_id = ?"
	args := []interface{}{filter.GymID}

	if filter.Date != "" {
		where += " AND a.date = ?"
		args = append(args, filter.Date)
	}
	if filter.SubjectID != "" {
		where += " AND a.coach_id = ?"
		args = append(args, filter.SubjectID)
	}
	if filter.SubjectName != "" {
		where += " AND c.name LIKE ?"
		args = append(args, "%"+filter.SubjectName+"%")
	}
	return where, args
}

func scanCoachAttendance(scan func(dest ...interface{}) error) (domain.CoachAttendance, error) {
	var value domain.CoachAttendance
	var checkOut sql.NullString

	err := scan(&value.ID, &value.CoachID, &value.Date, &value.CheckIn, &checkOut)
	if err != nil {
		return domain.CoachAttendance{}, err
	}
	value.CheckOut = checkOut.String
	return value, nil
}
