package web

import (
	"encoding/json"
	"net/http"
	"net/url"

	"gymoffice/internal/application/listutil"
	"gymoffice/internal/application/orchestrators"
	"gymoffice/internal/application/projections"
)

// handleMemberships handles GET (list), POST (create), PUT (update) and
// DELETE for {base}/memberships. Creating a membership forwards to the
// payment form with the membership preselected.
func handleMemberships(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	act := currentActor(r)
	listPath := basePath(act) + "/memberships"

	switch effectiveMethod(r) {
	case "GET":
		lp := listutil.ParseListParams(r.URL.Query(), projections.MembershipFilterKeys)
		if id := pathID(r); id != "" {
			lp.Filters["id"] = id
		}

		result, err := projections.QueryGetMembershipList(ctx, projections.GetMembershipListQuery{
			GymID:  act.GymID,
			Params: lp,
		}, projections.GetMembershipListDeps{
			MembershipStore: stores.MembershipStore,
			UserStore:       stores.UserStore,
		})
		if err != nil {
			internalError(w, err)
			return
		}

		if isHTMLRequest(r) {
			renderTemplate(w, r, "memberships.html", map[string]any{
				"Rows":           result.Rows,
				"Types":          result.Types,
				"PageInfo":       result.PageInfo,
				"Search":         lp.Search,
				"Filters":        lp.Filters,
				"PerPageOptions": listutil.PerPageOptions,
			})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)

	case "POST", "PUT":
		input, ok := decodeMembershipInput(w, r)
		if !ok {
			return
		}
		creating := effectiveMethod(r) == "POST"
		if creating {
			input.ID = ""
		} else if input.ID == "" {
			input.ID = pathID(r)
		}

		m, err := orchestrators.ExecuteSaveMembership(ctx, input, act.GymID, orchestrators.SaveMembershipDeps{
			MembershipStore: stores.MembershipStore,
			UserStore:       stores.UserStore,
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
			if creating {
				// Hand off to the payment form for the new membership
				target := basePath(act) + "/payments?" + url.Values{
					"membership_id": {m.ID},
					"user_id":       {m.UserID},
				}.Encode()
				redirectWithSuccess(w, r, target, "Membership created, register the payment")
				return
			}
			redirectWithSuccess(w, r, listPath, "Membership saved")
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
		err := orchestrators.ExecuteDeleteMembership(ctx, id, act.GymID, orchestrators.DeleteMembershipDeps{
			MembershipStore: stores.MembershipStore,
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
			redirectWithSuccess(w, r, listPath, "Membership deleted")
		} else {
			w.WriteHeader(http.StatusNoContent)
		}

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func decodeMembershipInput(w http.ResponseWriter, r *http.Request) (orchestrators.SaveMembershipInput, bool) {
	var input orchestrators.SaveMembershipInput
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return input, false
		}
		input.ID = r.FormValue("ID")
		input.UserID = r.FormValue("UserID")
		input.Type = r.FormValue("Type")
		input.Amount = parseFloat(r.FormValue("Amount"))
		input.Discount = parseFloat(r.FormValue("Discount"))
		input.StartDate = r.FormValue("StartDate")
		input.FinishDate = r.FormValue("FinishDate")
		return input, true
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return input, false
	}
	return input, true
}
