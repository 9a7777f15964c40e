package accesstoken

import "errors"

var (
	// ErrInvalidToken is the only error Verify returns.
	ErrInvalidToken = errors.New("accesstoken: invalid or expired token")

	ErrNoSecret       = errors.New("accesstoken: no signing secret configured")
	ErrSecretTooShort = errors.New("accesstoken: signing secret is too short")

	ErrEmptySessionID = errors.New("accesstoken: session id is required")
	ErrEmptyEmail     = errors.New("accesstoken: email is required")
	ErrInvalidTTL     = errors.New("accesstoken: ttl must be a positive number of seconds")
)
