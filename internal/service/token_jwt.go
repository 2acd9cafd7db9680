package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/apollo-kit/userd/internal/utils"
	"github.com/apollo-kit/userd/models"
)

// jwtStrategy is the stateless [TokenStrategy]: credentials are certified
// by a self-contained HMAC-SHA256 signed JWT carrying username, scope,
// and the issuance/expiry timestamps. Nothing is stored server-side; a
// token is valid exactly as long as its signature verifies and its
// expiry has not passed.
type jwtStrategy struct {
	signKey  string
	issuer   string
	duration time.Duration

	// validate is the optional post-verification hook. Invoked only
	// after signature and expiry checks succeed.
	validate ValidateFunc
}

// NewJWTStrategy constructs the JWT token strategy. The validate hook
// may be nil.
func NewJWTStrategy(signKey, issuer string, duration time.Duration, validate ValidateFunc) TokenStrategy {
	return &jwtStrategy{
		signKey:  signKey,
		issuer:   issuer,
		duration: duration,
		validate: validate,
	}
}

// Issue builds and signs a token for the given user. The claim set is
// assembled from the username and scope only; password material on the
// input record is never consulted, so it cannot leak into the token.
func (s *jwtStrategy) Issue(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(s.issuer, user, s.duration, s.signKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// Verify checks the raw token string and returns its decoded claims.
//
// The signature is verified before any embedded claim is trusted. Failure
// kinds remain distinguishable for callers:
//   - [ErrTokenExpired] — valid signature, exp in the past;
//   - [ErrTokenSignatureInvalid] — signature does not verify;
//   - [ErrTokenMalformed] — not a parseable token, bad issuer, or any
//     other structural defect;
//   - [ErrTokenRejected] — the optional validation hook said no.
func (s *jwtStrategy) Verify(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, s.signKey, s.issuer)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return models.Token{}, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return models.Token{}, ErrTokenSignatureInvalid
		default:
			return models.Token{}, ErrTokenMalformed
		}
	}

	if s.validate != nil {
		if err := s.validate(ctx, token); err != nil {
			return models.Token{}, fmt.Errorf("%w: %w", ErrTokenRejected, err)
		}
	}

	return token, nil
}
