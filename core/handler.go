package core

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ventaro/storefront/pkg/logger"
	"github.com/ventaro/storefront/pkg/requestid"
)

// ErrNilResponse is reported when a handler returns no Response.
var ErrNilResponse = errors.New("core: handler returned nil response")

// HandlerFunc handles a request and returns what to render.
type HandlerFunc func(r *http.Request) Response

// Handle adapts h to http.HandlerFunc. Errors returned by a handler are
// rendered through Error, so they reach clients only as HTTPError keys.
func Handle(log *slog.Logger, h HandlerFunc) http.HandlerFunc {
	if log == nil {
		log = logger.Discard()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		resp := h(r)
		if resp == nil {
			resp = Error(log, r, ErrNilResponse)
		}
		if err := resp.Render(w, r); err != nil {
			log.WarnContext(r.Context(), "render response", logger.Error(err))
		}
	}
}

// Error logs err at a level matching its status and returns the JSON error
// response. 5xx errors keep their detail in the log only. A nil log discards.
func Error(log *slog.Logger, r *http.Request, err error) Response {
	if log == nil {
		log = logger.Discard()
	}
	httpErr := ErrInternalServerError
	_ = errors.As(err, &httpErr)

	level := slog.LevelWarn
	if httpErr.Code >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	log.Log(r.Context(), level, "request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", httpErr.Code),
		logger.Error(err),
	)

	return errorResponse{inner: JSONError(err).(jsonResponse)}
}

// errorResponse stamps the request ID into the error body at render time.
type errorResponse struct {
	inner jsonResponse
}

func (e errorResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if id := requestid.FromContext(r.Context()); id != "" && e.inner.body.Error != nil {
		detail := *e.inner.body.Error
		detail.RequestID = id
		e.inner.body.Error = &detail
	}
	return e.inner.Render(w, r)
}
