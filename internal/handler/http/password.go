package http

import (
	"encoding/json"
	"net/http"

	"github.com/apollo-kit/userd/internal/logger"
	"github.com/apollo-kit/userd/internal/utils"
	"github.com/apollo-kit/userd/models"
)

// passwordChangeRequest is the body of "POST /password".
type passwordChangeRequest struct {
	NewPassword string `json:"newPassword"`
}

// changePassword sets a new password for the calling identity. The
// target username comes from the verified token in the request context,
// never from the body, so a user can only ever change their own
// password here.
func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	username, ok := utils.GetUsernameFromContext(ctx)
	if !ok {
		// unreachable behind the auth middleware
		writeError(w, r, ErrNoTokenProvided)
		return
	}

	var request passwordChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSON(w, models.Response{
			Result:  models.ResultBadRequest,
			Message: models.ResultBadRequest.Message(),
		}, http.StatusBadRequest)
		return
	}

	if err := h.services.UserService.ChangePassword(ctx, username, request.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("username", username).Msg("password changed")

	utils.WriteJSON(w, models.Response{
		Result:  models.ResultOK,
		Message: "Password changed successfully.",
	}, http.StatusOK)
}
