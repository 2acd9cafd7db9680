package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/apollo-kit/userd/internal/service"
	"github.com/apollo-kit/userd/models"
)

func TestChangePassword_Success(t *testing.T) {
	stub := tokenWithScope("alice", []string{"normal"})
	var gotUsername, gotPassword string
	users := &mockUserService{
		changePasswordFn: func(_ context.Context, username, newPassword string) error {
			gotUsername = username
			gotPassword = newPassword
			return nil
		},
	}
	h := newTestHandler(t, users, &mockAuthService{parseTokenFn: parseTokenStub(stub)})

	rec, envelope := doRequest(t, h, http.MethodPost, "/password", `{"newPassword":"s3cret"}`,
		withBearer(stub.SignedString))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.ResultOK, envelope.Result)
	assert.Equal(t, "Password changed successfully.", envelope.Message)

	assert.Equal(t, "alice", gotUsername, "target comes from the token subject")
	assert.Equal(t, "s3cret", gotPassword)
}

func TestChangePassword_NoAdminScopeNeeded(t *testing.T) {
	// Any authenticated identity may change its own password.
	stub := tokenWithScope("bob", []string{"normal"})
	users := &mockUserService{
		changePasswordFn: func(_ context.Context, _, _ string) error { return nil },
	}
	h := newTestHandler(t, users, &mockAuthService{parseTokenFn: parseTokenStub(stub)})

	rec, _ := doRequest(t, h, http.MethodPost, "/password", `{"newPassword":"pw"}`,
		withBearer(stub.SignedString))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestChangePassword_EmptyPassword(t *testing.T) {
	stub := tokenWithScope("alice", []string{"normal"})
	users := &mockUserService{
		changePasswordFn: func(_ context.Context, _, _ string) error {
			return service.ErrInvalidDataProvided
		},
	}
	h := newTestHandler(t, users, &mockAuthService{parseTokenFn: parseTokenStub(stub)})

	rec, envelope := doRequest(t, h, http.MethodPost, "/password", `{"newPassword":""}`,
		withBearer(stub.SignedString))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, models.ResultBadRequest, envelope.Result)
}

func TestChangePassword_InvalidJSON(t *testing.T) {
	stub := tokenWithScope("alice", []string{"normal"})
	h := newTestHandler(t, &mockUserService{}, &mockAuthService{parseTokenFn: parseTokenStub(stub)})

	rec, envelope := doRequest(t, h, http.MethodPost, "/password", `{"newPassword"`,
		withBearer(stub.SignedString))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, models.ResultBadRequest, envelope.Result)
}
