package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/apollo-kit/userd/internal/logger"
	"github.com/apollo-kit/userd/internal/utils"
	"github.com/apollo-kit/userd/models"
)

// tokenCookieName is the cookie the login route sets and the auth
// middleware falls back to when no "Authorization" header is present.
const tokenCookieName = "token"

// login authenticates the credentials in the request body and answers
// with a signed token, both in the envelope and as an HttpOnly cookie.
//
// Failed logins answer with one generic envelope regardless of whether
// the username was unknown or the password wrong.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var credentials models.User
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSON(w, models.Response{
			Result:  models.ResultBadRequest,
			Message: models.ResultBadRequest.Message(),
		}, http.StatusBadRequest)
		return
	}

	user, err := h.services.AuthService.ValidateCredentials(ctx, credentials.Username, credentials.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, user)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("username", user.Username).Msg("user logged in")

	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    token.SignedString,
		Path:     "/",
		Expires:  token.Claims.ExpiresAt.Time,
		HttpOnly: true,
	})

	utils.WriteJSON(w, models.Response{
		Result:  models.ResultOK,
		Token:   token.SignedString,
		Message: fmt.Sprintf("Login successful.\r\nWelcome %s!", user.Username),
	}, http.StatusOK)
}

// logout clears the token cookie and drops any server-side session
// state. The route is deliberately outside the auth group: logging out
// with an expired, malformed, or missing token still succeeds, so the
// caller's identity is resolved best-effort only to personalize the
// goodbye and target the session-cache drop.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var username string
	if tokenString, err := tokenFromRequest(r); err == nil {
		if token, err := h.services.AuthService.ParseToken(ctx, tokenString); err == nil {
			username = token.Claims.Username
			h.services.AuthService.Logout(ctx, username)
		}
	}

	// Expire the cookie regardless of whether the token verified.
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	message := "Logout Successful."
	if username != "" {
		message = fmt.Sprintf("Logout Successful.\r\nGoodbye %s!", username)
	}

	utils.WriteJSON(w, models.Response{
		Result:  models.ResultOK,
		Message: message,
	}, http.StatusOK)
}
