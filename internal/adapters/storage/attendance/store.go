package attendance

import (
	"context"
	"errors"

	domain "gymoffice/internal/domain/attendance"
)

// ErrNotFound is returned when an attendance record does not exist.
var ErrNotFound = errors.New("attendance record not found")

// Store persists user attendance records.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.UserAttendance, error)
	Save(ctx context.Context, value domain.UserAttendance) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.UserAttendance, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
}

// CoachStore persists coach attendance records.
type CoachStore interface {
	GetByID(ctx context.Context, id string) (domain.CoachAttendance, error)
	Save(ctx context.Context, value domain.CoachAttendance) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.CoachAttendance, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
}

// ListFilter carries filtering parameters for List operations. SubjectID
// is the user (or coach) the records belong to; SubjectName filters by
// their name.
type ListFilter struct {
	Limit       int
	Offset      int
	GymID       string
	Date        string
	SubjectID   string
	SubjectName string
}
