package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/apollo-kit/userd/internal/utils"
)

func TestRequireScope(t *testing.T) {
	tests := []struct {
		name          string
		identityScope []string
		requiredScope []string
		wantStatus    int
	}{
		{"admin passes admin gate", []string{"admin"}, []string{"admin"}, http.StatusOK},
		{"normal blocked by admin gate", []string{"normal"}, []string{"admin"}, http.StatusForbidden},
		{"either role passes a two-role gate", []string{"normal"}, []string{"admin", "normal"}, http.StatusOK},
		{"empty identity scope blocked", nil, []string{"admin"}, http.StatusForbidden},
	}

	h := newTestHandler(t, nil, nil)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req, rec := newRecordedRequest(t, func(r *http.Request) {
				ctx := context.WithValue(r.Context(), utils.UsernameCtxKey, "someone")
				ctx = context.WithValue(ctx, utils.ScopeCtxKey, tc.identityScope)
				*r = *r.WithContext(ctx)
			})

			h.requireScope(tc.requiredScope...)(inner).ServeHTTP(rec, req)
			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}

func TestRequireScope_NoIdentityInContext(t *testing.T) {
	// A request that somehow skips the auth middleware carries no scope
	// and is rejected.
	h := newTestHandler(t, nil, nil)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler must not be reached")
	})

	req, rec := newRecordedRequest(t)
	h.requireScope("admin")(inner).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), `"result":-4`)
}
