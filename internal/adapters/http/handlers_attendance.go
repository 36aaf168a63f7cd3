package web

import (
	"encoding/json"
	"net/http"

	"gymoffice/internal/application/listutil"
	"gymoffice/internal/application/orchestrators"
	"gymoffice/internal/application/projections"
)

// handleAttendanceUsers handles GET (list), POST (create), PUT (update)
// and DELETE for {base}/attendance-users.
func handleAttendanceUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	act := currentActor(r)
	listPath := basePath(act) + "/attendance-users"

	switch effectiveMethod(r) {
	case "GET":
		lp := listutil.ParseListParams(r.URL.Query(), projections.AttendanceFilterKeys)

		result, err := projections.QueryGetUserAttendanceList(ctx, projections.GetAttendanceListQuery{
			GymID:  act.GymID,
			Params: lp,
		}, projections.GetUserAttendanceListDeps{
			AttendanceStore: stores.UserAttendanceStore,
			UserStore:       stores.UserStore,
		})
		if err != nil {
			internalError(w, err)
			return
		}

		if isHTMLRequest(r) {
			renderTemplate(w, r, "attendance_users.html", map[string]any{
				"Rows":           result.Rows,
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
		input, ok := decodeUserAttendanceInput(w, r)
		if !ok {
			return
		}
		if effectiveMethod(r) == "POST" {
			input.ID = ""
		} else if input.ID == "" {
			input.ID = pathID(r)
		}

		deps := orchestrators.SaveUserAttendanceDeps{
			AttendanceStore: stores.UserAttendanceStore,
			UserStore:       stores.UserStore,
		}

		var err error
		switch r.FormValue("Action") {
		case "check_in":
			_, err = orchestrators.CheckInUser(ctx, input.UserID, act.GymID, timeNow(), deps)
		case "check_out":
			_, err = orchestrators.CheckOutUser(ctx, r.FormValue("AttendanceID"), act.GymID, timeNow(), deps)
		default:
			_, err = orchestrators.ExecuteSaveUserAttendance(ctx, input, act.GymID, deps)
		}
		if err != nil {
			if isHTMLRequest(r) {
				redirectWithError(w, r, listPath, err.Error())
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if isHTMLRequest(r) {
			redirectWithSuccess(w, r, listPath, "Attendance saved")
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
		err := orchestrators.ExecuteDeleteUserAttendance(ctx, id, act.GymID, orchestrators.DeleteUserAttendanceDeps{
			AttendanceStore: stores.UserAttendanceStore,
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
			redirectWithSuccess(w, r, listPath, "Attendance deleted")
		} else {
			w.WriteHeader(http.StatusNoContent)
		}

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func decodeUserAttendanceInput(w http.ResponseWriter, r *http.Request) (orchestrators.SaveUserAttendanceInput, bool) {
	var input orchestrators.SaveUserAttendanceInput
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return input, false
		}
		input.ID = r.FormValue("ID")
		input.UserID = r.FormValue("UserID")
		input.Date = r.FormValue("Date")
		input.CheckIn = r.FormValue("CheckIn")
		input.CheckOut = r.FormValue("CheckOut")
		return input, true
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return input, false
	}
	return input, true
}

// handleAttendanceCoaches handles GET (list), POST (create), PUT (update)
// and DELETE for {base}/attendance-coaches.
func handleAttendanceCoaches(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	act := currentActor(r)
	listPath := basePath(act) + "/attendance-coaches"

	switch effectiveMethod(r) {
	case "GET":
		lp := listutil.ParseListParams(r.URL.Query(), projections.AttendanceFilterKeys)

		result, err := projections.QueryGetCoachAttendanceList(ctx, projections.GetAttendanceListQuery{
			GymID:  act.GymID,
			Params: lp,
		}, projections.GetCoachAttendanceListDeps{
			AttendanceStore: stores.CoachAttendanceStore,
			CoachStore:      stores.CoachStore,
		})
		if err != nil {
			internalError(w, err)
			return
		}

		coaches, err := stores.CoachStore.ListByGym(ctx, act.GymID)
		if err != nil {
			internalError(w, err)
			return
		}

		if isHTMLRequest(r) {
			renderTemplate(w, r, "attendance_coaches.html", map[string]any{
				"Rows":           result.Rows,
				"Coaches":        coaches,
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
		input, ok := decodeCoachAttendanceInput(w, r)
		if !ok {
			return
		}
		if effectiveMethod(r) == "POST" {
			input.ID = ""
		} else if input.ID == "" {
			input.ID = pathID(r)
		}

		_, err := orchestrators.ExecuteSaveCoachAttendance(ctx, input, act.GymID, orchestrators.SaveCoachAttendanceDeps{
			AttendanceStore: stores.CoachAttendanceStore,
			CoachStore:      stores.CoachStore,
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
			redirectWithSuccess(w, r, listPath, "Attendance saved")
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
		err := orchestrators.ExecuteDeleteCoachAttendance(ctx, id, act.GymID, orchestrators.DeleteCoachAttendanceDeps{
			AttendanceStore: stores.CoachAttendanceStore,
			CoachStore:      stores.CoachStore,
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
			redirectWithSuccess(w, r, listPath, "Attendance deleted")
		} else {
			w.WriteHeader(http.StatusNoContent)
		}

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func decodeCoachAttendanceInput(w http.ResponseWriter, r *http.Request) (orchestrators.SaveCoachAttendanceInput, bool) {
	var input orchestrators.SaveCoachAttendanceInput
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return input, false
		}
		input.ID = r.FormValue("ID")
		input.CoachID = r.FormValue("CoachID")
		input.Date = r.FormValue("Date")
		input.CheckIn = r.FormValue("CheckIn")
		input.CheckOut = r.FormValue("CheckOut")
		return input, true
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return input, false
	}
	return input, true
}
