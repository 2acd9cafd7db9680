package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apollo-kit/userd/internal/logger"
	"github.com/apollo-kit/userd/internal/service"
	"github.com/apollo-kit/userd/models"
)

// ─────────────────────────────────────────────
// Mock AuthService
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	validateCredentialsFn func(ctx context.Context, username, clearPassword string) (models.User, error)
	createTokenFn         func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn          func(ctx context.Context, tokenString string) (models.Token, error)
	logoutFn              func(ctx context.Context, username string)
}

func (m *mockAuthService) ValidateCredentials(ctx context.Context, username, clearPassword string) (models.User, error) {
	return m.validateCredentialsFn(ctx, username, clearPassword)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

func (m *mockAuthService) Logout(ctx context.Context, username string) {
	if m.logoutFn != nil {
		m.logoutFn(ctx, username)
	}
}

// ─────────────────────────────────────────────
// Mock UserService
// ─────────────────────────────────────────────

type mockUserService struct {
	getFn            func(ctx context.Context, username string) (models.User, error)
	addFn            func(ctx context.Context, user models.User) error
	removeFn         func(ctx context.Context, username string) error
	getAllFn         func(ctx context.Context) ([]models.User, []error)
	changePasswordFn func(ctx context.Context, username, newPassword string) error
}

func (m *mockUserService) Get(ctx context.Context, username string) (models.User, error) {
	return m.getFn(ctx, username)
}

func (m *mockUserService) Add(ctx context.Context, user models.User) error {
	return m.addFn(ctx, user)
}

func (m *mockUserService) Remove(ctx context.Context, username string) error {
	return m.removeFn(ctx, username)
}

func (m *mockUserService) GetAll(ctx context.Context) ([]models.User, []error) {
	return m.getAllFn(ctx)
}

func (m *mockUserService) ChangePassword(ctx context.Context, username, newPassword string) error {
	return m.changePasswordFn(ctx, username, newPassword)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newTestHandler builds a Handler over the given service mocks. Nil
// mocks are replaced with empty ones so routes that never reach them
// still wire up.
func newTestHandler(t *testing.T, users *mockUserService, auth *mockAuthService) *Handler {
	t.Helper()
	if users == nil {
		users = &mockUserService{}
	}
	if auth == nil {
		auth = &mockAuthService{}
	}
	svcs := &service.Services{
		UserService: users,
		AuthService: auth,
	}
	return NewHandler(svcs, logger.Nop())
}

// adminToken returns a verified-token stub for an admin identity.
func adminToken(username string) models.Token {
	return tokenWithScope(username, []string{"admin"})
}

// tokenWithScope returns a verified-token stub carrying the given scope.
func tokenWithScope(username string, scope []string) models.Token {
	return models.Token{
		Claims: models.Claims{
			Username: username,
			Scope:    scope,
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   username,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		},
		SignedString: "signed.jwt." + username,
	}
}

// parseTokenStub returns a parseTokenFn accepting exactly the stub's
// signed string.
func parseTokenStub(stub models.Token) func(ctx context.Context, tokenString string) (models.Token, error) {
	return func(_ context.Context, tokenString string) (models.Token, error) {
		if tokenString != stub.SignedString {
			return models.Token{}, service.ErrTokenMalformed
		}
		return stub, nil
	}
}

// doRequest runs an HTTP request through the full router and returns
// the recorder plus the decoded response envelope.
func doRequest(t *testing.T, h *Handler, method, path, body string, configure ...func(*http.Request)) (*httptest.ResponseRecorder, models.Response) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for _, fn := range configure {
		fn(req)
	}

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)

	var envelope models.Response
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	}
	return rec, envelope
}

// newRecordedRequest builds a GET request plus recorder for exercising
// a middleware in isolation, outside the router.
func newRecordedRequest(t *testing.T, configure ...func(*http.Request)) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, fn := range configure {
		fn(req)
	}
	return req, httptest.NewRecorder()
}

// withBearer sets the Authorization header on a request.
func withBearer(token string) func(*http.Request) {
	return func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	}
}

// ─────────────────────────────────────────────
// Routing
// ─────────────────────────────────────────────

func TestRoutes_AuthRequired(t *testing.T) {
	// Every route behind the auth group answers 401 with the token
	// envelope when no token is presented.
	h := newTestHandler(t, nil, &mockAuthService{
		parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
			t.Fatal("ParseToken must not be called without a token")
			return models.Token{}, nil
		},
	})

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/users"},
		{http.MethodPut, "/users/alice"},
		{http.MethodDelete, "/users/alice"},
		{http.MethodPost, "/password"},
	}

	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec, envelope := doRequest(t, h, tc.method, tc.path, "")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, models.ResultTokenInvalid, envelope.Result)
		})
	}
}

func TestRoutes_UnknownPath(t *testing.T) {
	h := newTestHandler(t, nil, nil)

	rec, _ := doRequest(t, h, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRoutes_TraceIDHeaderSet(t *testing.T) {
	h := newTestHandler(t, nil, nil)

	rec, _ := doRequest(t, h, http.MethodGet, "/logout", "")
	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
}

func TestRoutes_TraceIDPropagated(t *testing.T) {
	h := newTestHandler(t, nil, nil)

	rec, _ := doRequest(t, h, http.MethodGet, "/logout", "", func(r *http.Request) {
		r.Header.Set(traceIDHeader, "trace-42")
	})
	assert.Equal(t, "trace-42", rec.Header().Get(traceIDHeader))
}
