package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// Credential validation outcomes. Kept distinguishable internally;
	// the HTTP boundary collapses ErrNoSuchUser and ErrWrongPassword
	// into one generic response.
	ErrNoSuchUser    = errors.New("no such user")
	ErrWrongPassword = errors.New("wrong password")

	// Token verification outcomes.
	ErrTokenExpired          = errors.New("token is expired")
	ErrTokenSignatureInvalid = errors.New("token signature is invalid")
	ErrTokenMalformed        = errors.New("token is malformed")
	ErrTokenRejected         = errors.New("token rejected by validation hook")

	ErrTokenCreationFailed = errors.New("token creation failed")
)
