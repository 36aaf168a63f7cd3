package projections

import (
	"context"
	"strings"
	"time"

	userstore "gymoffice/internal/adapters/storage/user"
	"gymoffice/internal/application/listutil"
	"gymoffice/internal/domain/user"
)

// UserListStore defines the user store interface needed by the list projection.
type UserListStore interface {
	List(ctx context.Context, filter userstore.ListFilter) ([]user.User, error)
	Count(ctx context.Context, filter userstore.ListFilter) (int, error)
}

// UserFilterKeys are the recognised filter parameters for the user list.
var UserFilterKeys = []string{"id", "state", "gender", "date"}

// GetUserListQuery carries input for the user list projection.
type GetUserListQuery struct {
	GymID  string
	Params listutil.ListParams
}

// GetUserListDeps holds dependencies for the user list projection.
type GetUserListDeps struct {
	UserStore UserListStore
}

// UserListResult carries the output of the user list projection.
type UserListResult struct {
	Users    []user.User
	PageInfo listutil.PageInfo
}

// QueryGetUserList returns one page of gym users matching the filters.
// PRE: GymID identifies the acting staff member's gym
// POST: Result rows all belong to GymID
func QueryGetUserList(ctx context.Context, query GetUserListQuery, deps GetUserListDeps) (UserListResult, error) {
	filter := userstore.ListFilter{
		GymID:      query.GymID,
		IDLike:     query.Params.Filters["id"],
		State:      query.Params.Filters["state"],
		Gender:     query.Params.Filters["gender"],
		SearchDate: query.Params.Filters["date"],
		Search:     query.Params.Search,
	}
	// A DD/MM/YYYY search term also matches on birth date.
	if filter.SearchDate == "" {
		if d, err := time.Parse("02/01/2006", strings.TrimSpace(query.Params.Search)); err == nil {
			filter.SearchDate = d.Format("2006-01-02")
		}
	}

	total, err := deps.UserStore.Count(ctx, filter)
	if err != nil {
		return UserListResult{}, err
	}

	info := listutil.NewPageInfo(query.Params.Page, query.Params.PerPage, total)
	filter.Limit = info.PerPage
	filter.Offset = info.Offset()

	users, err := deps.UserStore.List(ctx, filter)
	if err != nil {
		return UserListResult{}, err
	}

	return UserListResult{Users: users, PageInfo: info}, nil
}
