package http

import (
	"errors"
	"net/http"

	"github.com/apollo-kit/userd/internal/service"
	"github.com/apollo-kit/userd/internal/store"
	"github.com/apollo-kit/userd/models"
)

type errorMapping struct {
	result models.ResultCode
	status int
}

var errorResultMap = map[error]errorMapping{
	service.ErrInvalidDataProvided: {models.ResultBadRequest, http.StatusBadRequest},
	ErrInvalidUsername:             {models.ResultBadRequest, http.StatusBadRequest},

	// Unknown user and wrong password map to the same envelope so the
	// login route does not reveal which usernames exist.
	service.ErrNoSuchUser:    {models.ResultBadCredentials, http.StatusUnauthorized},
	service.ErrWrongPassword: {models.ResultBadCredentials, http.StatusUnauthorized},

	service.ErrTokenExpired:          {models.ResultTokenInvalid, http.StatusUnauthorized},
	service.ErrTokenSignatureInvalid: {models.ResultTokenInvalid, http.StatusUnauthorized},
	service.ErrTokenMalformed:        {models.ResultTokenInvalid, http.StatusUnauthorized},
	service.ErrTokenRejected:         {models.ResultTokenInvalid, http.StatusUnauthorized},
	ErrNoTokenProvided:               {models.ResultTokenInvalid, http.StatusUnauthorized},
	ErrInvalidAuthorizationHeader:    {models.ResultTokenInvalid, http.StatusUnauthorized},

	store.ErrUserNotFound: {models.ResultNotFound, http.StatusNotFound},

	store.ErrBuildingSQLQuery:   {models.ResultError, http.StatusInternalServerError},
	store.ErrExecutingQuery:     {models.ResultError, http.StatusInternalServerError},
	store.ErrExecutingStatement: {models.ResultError, http.StatusInternalServerError},
	store.ErrScanningRow:        {models.ResultError, http.StatusInternalServerError},
	store.ErrScanningRows:       {models.ResultError, http.StatusInternalServerError},
	store.ErrEncodingRecord:     {models.ResultError, http.StatusInternalServerError},
	store.ErrDecodingRecord:     {models.ResultError, http.StatusInternalServerError},
}

// mapError resolves an error from the service or store layer to the
// result code and HTTP status the transport answers with. Unrecognized
// errors collapse to a generic 500 so internals never leak.
func mapError(err error) (models.ResultCode, int) {
	for target, mapping := range errorResultMap {
		if errors.Is(err, target) {
			return mapping.result, mapping.status
		}
	}
	return models.ResultError, http.StatusInternalServerError
}
