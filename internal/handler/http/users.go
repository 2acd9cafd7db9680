package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/apollo-kit/userd/internal/logger"
	"github.com/apollo-kit/userd/internal/utils"
	"github.com/apollo-kit/userd/models"
)

// listUsers answers with a sanitized snapshot of every stored record.
//
// Row-level scan failures are logged and skipped; the readable part of
// the directory is still returned.
func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	users, errs := h.services.UserService.GetAll(ctx)
	for _, err := range errs {
		log.Err(err).Msg("unreadable user record skipped")
	}

	utils.WriteJSON(w, models.Response{
		Result: models.ResultOK,
		Data:   users,
	}, http.StatusOK)
}

// putUser creates or replaces the record for the path username. The
// body carries the clear-text password plus optional email and scope;
// the username comes from the path only.
func (h *Handler) putUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	username := chi.URLParam(r, "user")
	if !isAlphanumeric(username) {
		writeError(w, r, fmt.Errorf("user `%s`: %w", username, ErrInvalidUsername))
		return
	}

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSON(w, models.Response{
			Result:  models.ResultBadRequest,
			Message: models.ResultBadRequest.Message(),
		}, http.StatusBadRequest)
		return
	}
	user.Username = username

	if err := h.services.UserService.Add(ctx, user); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.Response{
		Result:  models.ResultOK,
		Message: fmt.Sprintf("User %s added successfully.", username),
	}, http.StatusOK)
}

// deleteUser removes the record for the path username. Deleting an
// absent user answers 404 with [models.ResultNotFound].
func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	username := chi.URLParam(r, "user")
	if !isAlphanumeric(username) {
		writeError(w, r, fmt.Errorf("user `%s`: %w", username, ErrInvalidUsername))
		return
	}

	if err := h.services.UserService.Remove(ctx, username); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.Response{
		Result:  models.ResultOK,
		Message: fmt.Sprintf("User %s deleted successfully.", username),
	}, http.StatusOK)
}

// isAlphanumeric reports whether s is non-empty ASCII letters and
// digits only, the constraint path usernames must satisfy.
func isAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
