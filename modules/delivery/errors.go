package delivery

import (
	"errors"
	"net/http"

	"github.com/ventaro/storefront/core"
)

var (
	// ErrAccessDenied covers every reason a token does not grant access.
	ErrAccessDenied = errors.New("delivery: access denied")
	ErrInvalidEvent = errors.New("delivery: invalid payment event")
	ErrInvalidURL   = errors.New("delivery: invalid base URL")
)

// errInvalidLink is the only error clients see for a bad access link.
var errInvalidLink = core.NewHTTPError(http.StatusUnauthorized, "invalid_or_expired_link")
