package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/apollo-kit/userd/models"
)

// HTTPClientConfig carries the settings of the HTTP adapter.
type HTTPClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

type httpServerAdapter struct {
	client *resty.Client

	mu    sync.RWMutex
	token string
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates cfg.BaseURL and
// configures the underlying resty client with the resolved base URL and
// request timeout.
//
// Returns an error if cfg.BaseURL is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(cfg HTTPClientConfig) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter base url: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout)

	return &httpServerAdapter{client: cli}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token
// (whitespace-trimmed) for use in the Authorization header of all
// subsequent authenticated requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter]. It returns the bearer token
// currently held by the adapter, or an empty string if none has been
// set.
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Login implements [ServerAdapter]. On success the token from the
// response envelope is stored via SetToken.
func (h *httpServerAdapter) Login(ctx context.Context, username, password string) (models.Token, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.User{Username: username, Password: password}).
		Post("/login")
	if err != nil {
		return models.Token{}, fmt.Errorf("login request: %w", err)
	}

	envelope, err := decodeEnvelope(resp)
	if err != nil {
		return models.Token{}, err
	}
	if envelope.Token == "" {
		return models.Token{}, fmt.Errorf("login response carries no token")
	}

	h.SetToken(envelope.Token)
	return models.Token{SignedString: envelope.Token}, nil
}

// Logout implements [ServerAdapter]. The stored token is cleared even
// when the request fails: the caller asked to end the session either
// way.
func (h *httpServerAdapter) Logout(ctx context.Context) error {
	defer h.SetToken("")

	resp, err := h.authedRequest(ctx).Post("/logout")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}

	_, err = decodeEnvelope(resp)
	return err
}

// Users implements [ServerAdapter].
func (h *httpServerAdapter) Users(ctx context.Context) ([]models.User, error) {
	resp, err := h.authedRequest(ctx).Get("/users")
	if err != nil {
		return nil, fmt.Errorf("users request: %w", err)
	}

	envelope, err := decodeEnvelope(resp)
	if err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// PutUser implements [ServerAdapter].
func (h *httpServerAdapter) PutUser(ctx context.Context, user models.User) error {
	username := user.Username
	user.Username = ""

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Put("/users/" + url.PathEscape(username))
	if err != nil {
		return fmt.Errorf("put user request: %w", err)
	}

	_, err = decodeEnvelope(resp)
	return err
}

// DeleteUser implements [ServerAdapter].
func (h *httpServerAdapter) DeleteUser(ctx context.Context, username string) error {
	resp, err := h.authedRequest(ctx).Delete("/users/" + url.PathEscape(username))
	if err != nil {
		return fmt.Errorf("delete user request: %w", err)
	}

	_, err = decodeEnvelope(resp)
	return err
}

// ChangePassword implements [ServerAdapter].
func (h *httpServerAdapter) ChangePassword(ctx context.Context, newPassword string) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"newPassword": newPassword}).
		Post("/password")
	if err != nil {
		return fmt.Errorf("change password request: %w", err)
	}

	_, err = decodeEnvelope(resp)
	return err
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

// decodeEnvelope parses the uniform response envelope and maps nonzero
// result codes to the package's sentinel errors.
func decodeEnvelope(resp *resty.Response) (models.Response, error) {
	var envelope models.Response
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return models.Response{}, fmt.Errorf("decode response (http %d): %w", resp.StatusCode(), err)
	}

	if err := mapResponseError(envelope, resp.StatusCode()); err != nil {
		return models.Response{}, err
	}
	return envelope, nil
}

func mapResponseError(envelope models.Response, statusCode int) error {
	switch envelope.Result {
	case models.ResultOK:
		return nil
	case models.ResultBadCredentials:
		return fmt.Errorf("%w: %s", ErrBadCredentials, envelope.Message)
	case models.ResultTokenInvalid:
		return fmt.Errorf("%w: %s", ErrUnauthorized, envelope.Message)
	case models.ResultForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, envelope.Message)
	case models.ResultNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, envelope.Message)
	default:
		message := envelope.Message
		if message == "" {
			message = http.StatusText(statusCode)
		}
		return fmt.Errorf("server error (result %d, http %d): %s", envelope.Result, statusCode, message)
	}
}
