package projections

import (
	"context"

	membershipstore "gymoffice/internal/adapters/storage/membership"
	"gymoffice/internal/application/listutil"
	"gymoffice/internal/domain/membership"
	"gymoffice/internal/domain/user"
)

// MembershipListStore defines the membership store interface needed by the list projection.
type MembershipListStore interface {
	List(ctx context.Context, filter membershipstore.ListFilter) ([]membership.Membership, error)
	Count(ctx context.Context, filter membershipstore.ListFilter) (int, error)
	DistinctTypes(ctx context.Context, gymID string) ([]string, error)
}

// OwnerNameStore resolves gym user names for display rows.
type OwnerNameStore interface {
	GetByID(ctx context.Context, id string) (user.User, error)
}

// MembershipFilterKeys are the recognised filter parameters for the membership list.
var MembershipFilterKeys = []string{"id", "user_id", "type", "start_date", "finish_date", "user_name"}

// GetMembershipListQuery carries input for the membership list projection.
type GetMembershipListQuery struct {
	GymID  string
	Params listutil.ListParams
}

// GetMembershipListDeps holds dependencies for the membership list projection.
type GetMembershipListDeps struct {
	MembershipStore MembershipListStore
	UserStore       OwnerNameStore
}

// MembershipRow is a membership with its owner's name for display.
type MembershipRow struct {
	membership.Membership
	UserName string
}

// MembershipListResult carries the output of the membership list projection.
type MembershipListResult struct {
	Rows     []MembershipRow
	Types    []string
	PageInfo listutil.PageInfo
}

// QueryGetMembershipList returns one page of memberships matching the filters.
// PRE: GymID identifies the acting staff member's gym
// POST: Result rows all belong to users of GymID
func QueryGetMembershipList(ctx context.Context, query GetMembershipListQuery, deps GetMembershipListDeps) (MembershipListResult, error) {
	filter := membershipstore.ListFilter{
		GymID:      query.GymID,
		IDLike:     query.Params.Filters["id"],
		UserID:     query.Params.Filters["user_id"],
		Type:       query.Params.Filters["type"],
		StartDate:  query.Params.Filters["start_date"],
		FinishDate: query.Params.Filters["finish_date"],
		UserName:   query.Params.Filters["user_name"],
		Search:     query.Params.Search,
	}

	total, err := deps.MembershipStore.Count(ctx, filter)
	if err != nil {
		return MembershipListResult{}, err
	}

	info := listutil.NewPageInfo(query.Params.Page, query.Params.PerPage, total)
	filter.Limit = info.PerPage
	filter.Offset = info.Offset()

	values, err := deps.MembershipStore.List(ctx, filter)
	if err != nil {
		return MembershipListResult{}, err
	}

	rows := make([]MembershipRow, 0, len(values))
	names := make(map[string]string)
	for _, m := range values {
		name, ok := names[m.UserID]
		if !ok {
			if owner, err := deps.UserStore.GetByID(ctx, m.UserID); err == nil {
				name = owner.Name
			}
			names[m.UserID] = name
		}
		rows = append(rows, MembershipRow{Membership: m, UserName: name})
	}

	types, err := deps.MembershipStore.DistinctTypes(ctx, query.GymID)
	if err != nil {
		return MembershipListResult{}, err
	}

	return MembershipListResult{Rows: rows, Types: types, PageInfo: info}, nil
}
