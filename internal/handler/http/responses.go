package http

import (
	"net/http"

	"github.com/apollo-kit/userd/internal/logger"
	"github.com/apollo-kit/userd/internal/utils"
	"github.com/apollo-kit/userd/models"
)

// writeError logs err and answers with the envelope mapped from it.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	result, status := mapError(err)

	log := logger.FromRequest(r)
	log.Err(err).Int("result", int(result)).Int("status", status).Msg("request failed")

	utils.WriteJSON(w, models.Response{Result: result, Message: result.Message()}, status)
}
