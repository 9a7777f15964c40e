package payment

import "errors"

var (
	ErrInvalidConfig    = errors.New("payment: invalid configuration")
	ErrInvalidSignature = errors.New("payment: webhook signature verification failed")
	ErrMalformedEvent   = errors.New("payment: malformed webhook payload")
	ErrMissingCustom    = errors.New("payment: transaction is missing session_id or email custom data")
	ErrIgnoredEvent     = errors.New("payment: event type ignored")
)
