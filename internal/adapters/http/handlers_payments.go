package web

import (
	"encoding/json"
	"net/http"

	"gymoffice/internal/application/listutil"
	"gymoffice/internal/application/orchestrators"
	"gymoffice/internal/application/projections"
)

// handlePayments handles GET (list), POST (create), PUT (update) and
// DELETE for {base}/payments. The list page doubles as the payment form;
// membership_id and user_id query params preselect its fields.
func handlePayments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	act := currentActor(r)
	listPath := basePath(act) + "/payments"

	switch effectiveMethod(r) {
	case "GET":
		lp := listutil.ParseListParams(r.URL.Query(), projections.PaymentFilterKeys)
		if id := pathID(r); id != "" {
			lp.Filters["id"] = id
		}

		result, err := projections.QueryGetPaymentList(ctx, projections.GetPaymentListQuery{
			GymID:  act.GymID,
			Params: lp,
		}, projections.GetPaymentListDeps{
			PaymentStore: stores.PaymentStore,
			UserStore:    stores.UserStore,
		})
		if err != nil {
			internalError(w, err)
			return
		}

		if isHTMLRequest(r) {
			renderTemplate(w, r, "payments.html", map[string]any{
				"Rows":            result.Rows,
				"Methods":         result.Methods,
				"PageInfo":        result.PageInfo,
				"Search":          lp.Search,
				"Filters":         lp.Filters,
				"PerPageOptions":  listutil.PerPageOptions,
				"NewMembershipID": r.URL.Query().Get("membership_id"),
				"NewUserID":       r.URL.Query().Get("user_id"),
			})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)

	case "POST", "PUT":
		input, ok := decodePaymentInput(w, r)
		if !ok {
			return
		}
		if effectiveMethod(r) == "POST" {
			input.ID = ""
		} else if input.ID == "" {
			input.ID = pathID(r)
		}

		_, err := orchestrators.ExecuteSavePayment(ctx, input, act.GymID, orchestrators.SavePaymentDeps{
			PaymentStore:    stores.PaymentStore,
			MembershipStore: stores.MembershipStore,
			UserStore:       stores.UserStore,
			EmailSender:     emailSender,
		})
		if err != nil {
			if isHTMLRequest(r) {
				redirectWithError(w, r, listPath, err.Error())
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if isHTMLRequest(r) {
			redirectWithSuccess(w, r, listPath, "Payment registered")
		} else {
			w.WriteHeader(http.StatusNoContent)
		}

	case "DELETE":
		id := r.FormValue("ID")
		if id == "" {
			id = r.URL.Query().Get("id")
		}
		if id == "" {
			id = pathID(r)
		}
		err := orchestrators.ExecuteDeletePayment(ctx, id, act.GymID, orchestrators.DeletePaymentDeps{
			PaymentStore: stores.PaymentStore,
			UserStore:    stores.UserStore,
		})
		if err != nil {
			if isHTMLRequest(r) {
				redirectWithError(w, r, listPath, err.Error())
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if isHTMLRequest(r) {
			redirectWithSuccess(w, r, listPath, "Payment deleted")
		} else {
			w.WriteHeader(http.StatusNoContent)
		}

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func decodePaymentInput(w http.ResponseWriter, r *http.Request) (orchestrators.SavePaymentInput, bool) {
	var input orchestrators.SavePaymentInput
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return input, false
		}
		input.ID = r.FormValue("ID")
		input.UserID = r.FormValue("UserID")
		input.MembershipID = r.FormValue("MembershipID")
		input.Date = r.FormValue("Date")
		input.Amount = parseFloat(r.FormValue("Amount"))
		input.Method = r.FormValue("Method")
		return input, true
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return input, false
	}
	return input, true
}
