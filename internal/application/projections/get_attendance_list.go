package projections

import (
	"context"

	attendancestore "gymoffice/internal/adapters/storage/attendance"
	"gymoffice/internal/application/listutil"
	"gymoffice/internal/domain/attendance"
	"gymoffice/internal/domain/coach"
)

// UserAttendanceListStore defines the attendance store interface needed by
// the user attendance list projection.
type UserAttendanceListStore interface {
	List(ctx context.Context, filter attendancestore.ListFilter) ([]attendance.UserAttendance, error)
	Count(ctx context.Context, filter attendancestore.ListFilter) (int, error)
}

// CoachAttendanceListStore defines the attendance store interface needed by
// the coach attendance list projection.
type CoachAttendanceListStore interface {
	List(ctx context.Context, filter attendancestore.ListFilter) ([]attendance.CoachAttendance, error)
	Count(ctx context.Context, filter attendancestore.ListFilter) (int, error)
}

// CoachNameStore resolves coach names for display rows.
type CoachNameStore interface {
	GetByID(ctx context.Context, id string) (coach.Coach, error)
}

// AttendanceFilterKeys are the recognised filter parameters for both
// attendance lists. The user_id key doubles as the coach id on the coach
// attendance list.
var AttendanceFilterKeys = []string{"date", "user_id", "user_name"}

// GetAttendanceListQuery carries input for the attendance list projections.
type GetAttendanceListQuery struct {
	GymID  string
	Params listutil.ListParams
}

// GetUserAttendanceListDeps holds dependencies for the user attendance list projection.
type GetUserAttendanceListDeps struct {
	AttendanceStore UserAttendanceListStore
	UserStore       OwnerNameStore
}

// UserAttendanceRow is an attendance record with the member's name for display.
type UserAttendanceRow struct {
	attendance.UserAttendance
	UserName string
}

// UserAttendanceListResult carries the output of the user attendance list projection.
type UserAttendanceListResult struct {
	Rows     []UserAttendanceRow
	PageInfo listutil.PageInfo
}

// QueryGetUserAttendanceList returns one page of user attendance records.
// PRE: GymID identifies the acting staff member's gym
// POST: Result rows all belong to users of GymID
func QueryGetUserAttendanceList(ctx context.Context, query GetAttendanceListQuery, deps GetUserAttendanceListDeps) (UserAttendanceListResult, error) {
	filter := attendanceFilter(query)

	total, err := deps.AttendanceStore.Count(ctx, filter)
	if err != nil {
		return UserAttendanceListResult{}, err
	}

	info := listutil.NewPageInfo(query.Params.Page, query.Params.PerPage, total)
	filter.Limit = info.PerPage
	filter.Offset = info.Offset()

	values, err := deps.AttendanceStore.List(ctx, filter)
	if err != nil {
		return UserAttendanceListResult{}, err
	}

	rows := make([]UserAttendanceRow, 0, len(values))
	names := make(map[string]string)
	for _, a := range values {
		name, ok := names[a.UserID]
		if !ok {
			if owner, err := deps.UserStore.GetByID(ctx, a.UserID); err == nil {
				name = owner.Name
			}
			names[a.UserID] = name
		}
		rows = append(rows, UserAttendanceRow{UserAttendance: a, UserName: name})
	}

	return UserAttendanceListResult{Rows: rows, PageInfo: info}, nil
}

// GetCoachAttendanceListDeps holds dependencies for the coach attendance list projection.
type GetCoachAttendanceListDeps struct {
	AttendanceStore CoachAttendanceListStore
	CoachStore      CoachNameStore
}

// CoachAttendanceRow is an attendance record with the coach's name for display.
type CoachAttendanceRow struct {
	attendance.CoachAttendance
	CoachName string
}

// CoachAttendanceListResult carries the output of the coach attendance list projection.
type CoachAttendanceListResult struct {
	Rows     []CoachAttendanceRow
	PageInfo listutil.PageInfo
}

// QueryGetCoachAttendanceList returns one page of coach attendance records.
// PRE: GymID identifies the acting staff member's gym
// POST: Result rows all belong to coaches of GymID
func QueryGetCoachAttendanceList(ctx context.Context, query GetAttendanceListQuery, deps GetCoachAttendanceListDeps) (CoachAttendanceListResult, error) {
	filter := attendanceFilter(query)

	total, err := deps.AttendanceStore.Count(ctx, filter)
	if err != nil {
		return CoachAttendanceListResult{}, err
	}

	info := listutil.NewPageInfo(query.Params.Page, query.Params.PerPage, total)
	filter.Limit = info.PerPage
	filter.Offset = info.Offset()

	values, err := deps.AttendanceStore.List(ctx, filter)
	if err != nil {
		return CoachAttendanceListResult{}, err
	}

	rows := make([]CoachAttendanceRow, 0, len(values))
	names := make(map[string]string)
	for _, a := range values {
		name, ok := names[a.CoachID]
		if !ok {
			if c, err := deps.CoachStore.GetByID(ctx, a.CoachID); err == nil {
				name = c.Name
			}
			names[a.CoachID] = name
		}
		rows = append(rows, CoachAttendanceRow{CoachAttendance: a, CoachName: name})
	}

	return CoachAttendanceListResult{Rows: rows, PageInfo: info}, nil
}

func attendanceFilter(query GetAttendanceListQuery) attendancestore.ListFilter {
	name := query.Params.Filters["user_name"]
	if name == "" {
		name = query.Params.Search
	}
	return attendancestore.ListFilter{
		GymID:       query.GymID,
		Date:        query.Params.Filters["date"],
		SubjectID:   query.Params.Filters["user_id"],
		SubjectName: name,
	}
}
