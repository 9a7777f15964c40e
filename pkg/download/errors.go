package download

import "errors"

var (
	ErrInvalidConfig      = errors.New("download: invalid configuration")
	ErrFailedToLoadConfig = errors.New("download: failed to load AWS config")
	ErrEmptyKey           = errors.New("download: empty object key")
	ErrFailedToPresign    = errors.New("download: failed to presign URL")

	ErrBucketNotFound     = errors.New("download: bucket not found")
	ErrAccessDenied       = errors.New("download: access denied")
	ErrServiceUnavailable = errors.New("download: service temporarily unavailable")
	ErrOperationTimeout   = errors.New("download: operation timed out")
	ErrOperationCanceled  = errors.New("download: operation canceled")
)
