package web

import (
	"encoding/json"
	"net/http"

	"gymoffice/internal/application/listutil"
	"gymoffice/internal/application/orchestrators"
	"gymoffice/internal/application/projections"
)

// handleUsers handles GET (list), POST (create), PUT (update) and DELETE
// for {base}/users. HTML forms express PUT and DELETE via _method.
func handleUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	act := currentActor(r)
	listPath := basePath(act) + "/users"

	switch effectiveMethod(r) {
	case "GET":
		lp := listutil.ParseListParams(r.URL.Query(), projections.UserFilterKeys)
		if id := pathID(r); id != "" {
			lp.Filters["id"] = id
		}

		result, err := projections.QueryGetUserList(ctx, projections.GetUserListQuery{
			GymID:  act.GymID,
			Params: lp,
		}, projections.GetUserListDeps{UserStore: stores.UserStore})
		if err != nil {
			internalError(w, err)
			return
		}

		if isHTMLRequest(r) {
			renderTemplate(w, r, "users.html", map[string]any{
				"Users":          result.Users,
				"PageInfo":       result.PageInfo,
				"Search":         lp.Search,
				"FilterID":       lp.Filters["id"],
				"FilterState":    lp.Filters["state"],
				"FilterGender":   lp.Filters["gender"],
				"FilterDate":     lp.Filters["date"],
				"PerPageOptions": listutil.PerPageOptions,
			})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)

	case "POST", "PUT":
		input, ok := decodeUserInput(w, r)
		if !ok {
			return
		}
		if input.ID == "" {
			input.ID = pathID(r)
		}
		input.GymID = act.GymID
		input.Update = effectiveMethod(r) == "PUT"

		_, err := orchestrators.ExecuteSaveUser(ctx, input, orchestrators.SaveUserDeps{
			UserStore: stores.UserStore,
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
			redirectWithSuccess(w, r, listPath, "User saved")
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
		err := orchestrators.ExecuteDeleteUser(ctx, id, act.GymID, orchestrators.DeleteUserDeps{
			UserStore: stores.UserStore,
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
			redirectWithSuccess(w, r, listPath, "User deleted")
		} else {
			w.WriteHeader(http.StatusNoContent)
		}

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func decodeUserInput(w http.ResponseWriter, r *http.Request) (orchestrators.SaveUserInput, bool) {
	var input orchestrators.SaveUserInput
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return input, false
		}
		input.ID = r.FormValue("ID")
		input.Name = r.FormValue("Name")
		input.Gender = r.FormValue("Gender")
		input.BirthDate = r.FormValue("BirthDate")
		input.PhoneNumber = r.FormValue("PhoneNumber")
		input.Email = r.FormValue("Email")
		input.State = r.FormValue("State")
		return input, true
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return input, false
	}
	return input, true
}
