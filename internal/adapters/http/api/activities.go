package api

import (
	"errors"
	"net/http"

	"github.com/mergington/activities/internal/domain/activity"
	"github.com/mergington/activities/pkg/logger"
)

const detailActivityNotFound = "Activity not found"

// ActivitiesHandler serves the activity directory.
type ActivitiesHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewActivitiesHandler creates a new activities handler.
func NewActivitiesHandler(deps Dependencies, log logger.Logger) *ActivitiesHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &ActivitiesHandler{deps: deps, logger: log}
}

// HandleList handles GET /activities.
func (h *ActivitiesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_activities"
	list, err := h.deps.List(r.Context())
	if err != nil {
		h.logger.Error(r.Context(), "list failed", logger.Error(Wrap(op, err)))
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// HandleSignup handles POST /activities/{activityName}/signup?email=.
func (h *ActivitiesHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	const op = "api.signup"
	name, email, ok := h.rosterParams(w, r, op)
	if !ok {
		return
	}
	msg, err := h.deps.Signup(r.Context(), name, email)
	if err != nil {
		h.writeRosterError(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}

// HandleUnregister handles DELETE /activities/{activityName}/unregister?email=.
func (h *ActivitiesHandler) HandleUnregister(w http.ResponseWriter, r *http.Request) {
	const op = "api.unregister"
	name, email, ok := h.rosterParams(w, r, op)
	if !ok {
		return
	}
	msg, err := h.deps.Unregister(r.Context(), name, email)
	if err != nil {
		h.writeRosterError(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}

// rosterParams extracts the activity name from the path and the email from
// the query. Only presence is checked: an empty ?email= is passed through.
func (h *ActivitiesHandler) rosterParams(w http.ResponseWriter, r *http.Request, op string) (string, string, bool) {
	name := r.PathValue("activityName")
	query := r.URL.Query()
	if !query.Has("email") {
		h.logger.Debug(r.Context(), "missing email", logger.Error(NewKind(op, ErrUnprocessable)))
		writeError(w, http.StatusUnprocessableEntity, "unprocessable", "email query parameter is required")
		return "", "", false
	}
	return name, query.Get("email"), true
}

func (h *ActivitiesHandler) writeRosterError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var rosterErr *activity.RosterError
	switch {
	case errors.Is(err, activity.ErrNotFound):
		h.logger.Debug(r.Context(), "roster change rejected", logger.Error(WrapKind(op, ErrNotFound, err)))
		writeError(w, http.StatusNotFound, "not_found", detailActivityNotFound)
	case activity.IsConflict(err) && errors.As(err, &rosterErr):
		h.logger.Debug(r.Context(), "roster change rejected", logger.Error(WrapKind(op, ErrConflict, err)))
		writeError(w, http.StatusBadRequest, "conflict", rosterErr.Error())
	default:
		h.logger.Error(r.Context(), "roster change failed", logger.Error(Wrap(op, err)))
		writeError(w, http.StatusInternalServerError, "internal_error", "")
	}
}
