package projections

import (
	"context"

	paymentstore "gymoffice/internal/adapters/storage/payment"
	"gymoffice/internal/application/listutil"
	"gymoffice/internal/domain/payment"
)

// PaymentListStore defines the payment store interface needed by the list projection.
type PaymentListStore interface {
	List(ctx context.Context, filter paymentstore.ListFilter) ([]payment.Payment, error)
	Count(ctx context.Context, filter paymentstore.ListFilter) (int, error)
	DistinctMethods(ctx context.Context, gymID string) ([]string, error)
}

// PaymentFilterKeys are the recognised filter parameters for the payment list.
var PaymentFilterKeys = []string{"id", "user_id", "membership_id", "method", "date", "user_name"}

// GetPaymentListQuery carries input for the payment list projection.
type GetPaymentListQuery struct {
	GymID  string
	Params listutil.ListParams
}

// GetPaymentListDeps holds dependencies for the payment list projection.
type GetPaymentListDeps struct {
	PaymentStore PaymentListStore
	UserStore    OwnerNameStore
}

// PaymentRow is a payment with its payer's name for display.
type PaymentRow struct {
	payment.Payment
	UserName string
}

// PaymentListResult carries the output of the payment list projection.
type PaymentListResult struct {
	Rows     []PaymentRow
	Methods  []string
	PageInfo listutil.PageInfo
}

// QueryGetPaymentList returns one page of payments matching the filters.
// PRE: GymID identifies the acting staff member's gym
// POST: Result rows all belong to users of GymID
func QueryGetPaymentList(ctx context.Context, query GetPaymentListQuery, deps GetPaymentListDeps) (PaymentListResult, error) {
	filter := paymentstore.ListFilter{
		GymID:        query.GymID,
		IDLike:       query.Params.Filters["id"],
		UserID:       query.Params.Filters["user_id"],
		MembershipID: query.Params.Filters["membership_id"],
		Method:       query.Params.Filters["method"],
		Date:         query.Params.Filters["date"],
		UserName:     query.Params.Filters["user_name"],
		Search:       query.Params.Search,
	}

	total, err := deps.PaymentStore.Count(ctx, filter)
	if err != nil {
		return PaymentListResult{}, err
	}

	info := listutil.NewPageInfo(query.Params.Page, query.Params.PerPage, total)
	filter.Limit = info.PerPage
	filter.Offset = info.Offset()

	values, err := deps.PaymentStore.List(ctx, filter)
	if err != nil {
		return PaymentListResult{}, err
	}

	rows := make([]PaymentRow, 0, len(values))
	names := make(map[string]string)
	for _, p := range values {
		name, ok := names[p.UserID]
		if !ok {
			if owner, err := deps.UserStore.GetByID(ctx, p.UserID); err == nil {
				name = owner.Name
			}
			names[p.UserID] = name
		}
		rows = append(rows, PaymentRow{Payment: p, UserName: name})
	}

	methods, err := deps.PaymentStore.DistinctMethods(ctx, query.GymID)
	if err != nil {
		return PaymentListResult{}, err
	}

	return PaymentListResult{Rows: rows, Methods: methods, PageInfo: info}, nil
}
