package auth

import "errors"

// Token verification errors
var (
	// ErrInvalidToken indicates the access token is malformed, has a bad
	// signature, or carries unusable claims.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the access token has expired.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrInvalidRefreshToken indicates the refresh token is malformed, has a
	// bad signature, or has been revoked.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrExpiredRefreshToken indicates the refresh token has expired.
	ErrExpiredRefreshToken = errors.New("refresh token has expired")

	// ErrWrongTokenType indicates an access token was presented where a
	// refresh token was expected, or the other way round.
	ErrWrongTokenType = errors.New("wrong token type")

	// ErrMissingToken indicates a token was expected but not provided.
	ErrMissingToken = errors.New("authentication token is missing")
)

// Credential errors
var (
	// ErrInvalidCredentials covers both an unknown email and a wrong password
	// so that callers cannot tell which one it was.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
