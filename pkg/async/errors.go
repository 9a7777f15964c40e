package async

import "errors"

var (
	ErrBusy   = errors.New("async: runner at capacity")
	ErrClosed = errors.New("async: runner closed")
)
