package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/apollo-kit/userd/internal/logger"
	"github.com/apollo-kit/userd/internal/utils"
)

// auth is an HTTP middleware that enforces token-based authentication.
//
// It extracts the token from the incoming request — "Authorization"
// header first, "token" cookie as the fallback — verifies it via
// [service.AuthService.ParseToken], and on success stores the
// authenticated username and scope in the request context under
// [utils.UsernameCtxKey] and [utils.ScopeCtxKey] before delegating to
// the next handler.
//
// Requests are rejected with HTTP 401 and a [models.ResultTokenInvalid]
// envelope when:
//   - no token is present at all ([ErrNoTokenProvided]);
//   - the "Authorization" header cannot be parsed as a bearer token
//     ([ErrInvalidAuthorizationHeader]);
//   - the token is expired, malformed, carries a bad signature, or its
//     subject no longer exists in the user directory.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := tokenFromRequest(r)
		if err != nil {
			log.Err(err).Send()
			writeError(w, r, err)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Err(err).Msg("error occurred during parsing token")
			writeError(w, r, err)
			return
		}

		// Store the verified identity in the context so downstream
		// handlers can retrieve it without re-parsing the token.
		ctx = context.WithValue(ctx, utils.UsernameCtxKey, token.Claims.Username)
		ctx = context.WithValue(ctx, utils.ScopeCtxKey, token.Claims.Scope)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// tokenFromRequest extracts the raw token string from a request. The
// "Authorization" header takes precedence; the "token" cookie is the
// fallback for browser clients that received it from the login route.
func tokenFromRequest(r *http.Request) (string, error) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrInvalidAuthorizationHeader, err)
		}
		return tokenString, nil
	}

	if cookie, err := r.Cookie(tokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	return "", ErrNoTokenProvided
}
