package controllers

import (
	"net/http"
	"strconv"

	"eventhub/internal/delivery/http/helpers"
	"eventhub/internal/delivery/http/middleware"
)

// identity returns the caller set by RequireAuth, writing 401 when there is none.
func identity(w http.ResponseWriter, r *http.Request) (middleware.Identity, bool) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
	}
	return id, ok
}

// eventIDParam parses the {eventID} path value, writing 400 when it is not a positive integer.
func eventIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.PathValue("eventID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return 0, false
	}
	return id, true
}
