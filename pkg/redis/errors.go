package redis

import "errors"

var (
	ErrEmptyURL          = errors.New("redis: empty connection URL")
	ErrInvalidURL        = errors.New("redis: failed to parse connection URL")
	ErrNotReady          = errors.New("redis: not ready within the retry budget")
	ErrHealthcheckFailed = errors.New("redis: healthcheck failed")
)
