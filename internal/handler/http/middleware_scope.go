package http

import (
	"net/http"

	"github.com/apollo-kit/userd/internal/logger"
	"github.com/apollo-kit/userd/internal/service"
	"github.com/apollo-kit/userd/internal/utils"
	"github.com/apollo-kit/userd/models"
)

// requireScope builds a middleware that gates a route on the calling
// identity's scope: the request proceeds only when the scope stored in
// the context by the auth middleware intersects requiredScope.
//
// Rejections answer HTTP 403 with a [models.ResultForbidden] envelope.
// Authentication and authorization stay distinct: a valid token with
// insufficient scope is 403, never 401.
func (h *Handler) requireScope(requiredScope ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.FromRequest(r)

			identityScope, ok := utils.GetScopeFromContext(r.Context())
			if !ok || !service.Authorize(identityScope, requiredScope) {
				username, _ := utils.GetUsernameFromContext(r.Context())
				log.Warn().
					Str("username", username).
					Strs("identity_scope", identityScope).
					Strs("required_scope", requiredScope).
					Msg("insufficient scope")

				utils.WriteJSON(w, models.Response{
					Result:  models.ResultForbidden,
					Message: models.ResultForbidden.Message(),
				}, http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
