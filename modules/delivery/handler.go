package delivery

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ventaro/storefront/core"
	"github.com/ventaro/storefront/pkg/logger"
	"github.com/ventaro/storefront/pkg/payment"
)

// Deliverer is the part of Service the HTTP layer uses.
type Deliverer interface {
	HandlePayment(ctx context.Context, ev payment.Event) error
	ResendLink(ctx context.Context, sessionID, email string) error
	Redeem(ctx context.Context, token string) (*Access, error)
}

// WebhookParser verifies and parses payment webhooks. *payment.Paddle
// satisfies it.
type WebhookParser interface {
	ParseRequest(r *http.Request) (payment.Event, error)
}

// Background runs work after the response is written. *async.Runner
// satisfies it.
type Background interface {
	Go(ctx context.Context, name string, fn func(context.Context) error) error
}

// Handler exposes the delivery flow over HTTP.
type Handler struct {
	svc           Deliverer
	webhooks      WebhookParser
	resendLimiter func(http.Handler) http.Handler
	background    Background
	accessPath    string
	log           *slog.Logger
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithHandlerLogger sets the request logger.
func WithHandlerLogger(l *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if l != nil {
			h.log = l
		}
	}
}

// WithResendLimiter guards the resend endpoint with mw, typically a
// ratelimiter.Middleware keyed by client IP.
func WithResendLimiter(mw func(http.Handler) http.Handler) HandlerOption {
	return func(h *Handler) { h.resendLimiter = mw }
}

// WithBackground moves resend work off the request path, so the response
// time is the same whether or not the session exists.
func WithBackground(b Background) HandlerOption {
	return func(h *Handler) { h.background = b }
}

// WithAccessPath serves access links under path instead of
// DefaultAccessPath. Pass the Config.AccessPath the Service was built with.
func WithAccessPath(path string) HandlerOption {
	return func(h *Handler) { h.accessPath = path }
}

// NewHandler builds the HTTP layer over svc. A nil webhooks disables the
// Paddle route.
func NewHandler(svc Deliverer, webhooks WebhookParser, opts ...HandlerOption) *Handler {
	h := &Handler{svc: svc, webhooks: webhooks, log: logger.Discard()}
	for _, opt := range opts {
		opt(h)
	}
	h.accessPath = normalizeAccessPath(h.accessPath)
	h.log = h.log.With(logger.Component("delivery_http"))
	return h
}

// Handle returns the module router:
//
//	GET  {access path}?token=...
//	POST {access path}/resend
//	POST /webhooks/paddle
func (h *Handler) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get(h.accessPath, core.Handle(h.log, h.access))

	r.Group(func(r chi.Router) {
		if h.resendLimiter != nil {
			r.Use(h.resendLimiter)
		}
		r.Post(h.accessPath+"/resend", core.Handle(h.log, h.resend))
	})

	if h.webhooks != nil {
		r.Post("/webhooks/paddle", core.Handle(h.log, h.paddleWebhook))
	}
	return r
}

func (h *Handler) access(r *http.Request) core.Response {
	token := r.URL.Query().Get("token")
	if token == "" {
		return core.Error(h.log, r, errInvalidLink)
	}

	access, err := h.svc.Redeem(r.Context(), token)
	if err != nil {
		if errors.Is(err, ErrAccessDenied) {
			return core.Error(h.log, r, errInvalidLink)
		}
		return core.Error(h.log, r, err)
	}
	return core.JSON(access)
}

type resendRequest struct {
	SessionID string `json:"session_id"`
	Email     string `json:"email"`
}

// resend answers 202 for every well-formed request so callers cannot probe
// which sessions exist.
func (h *Handler) resend(r *http.Request) core.Response {
	var req resendRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		return core.Error(h.log, r, err)
	}

	resend := func(ctx context.Context) error {
		return h.svc.ResendLink(ctx, req.SessionID, req.Email)
	}

	if h.background == nil {
		if err := resend(r.Context()); err != nil {
			h.log.ErrorContext(r.Context(), "resend access link", logger.Error(err))
		}
		return core.Status(http.StatusAccepted)
	}

	if err := h.background.Go(r.Context(), "resend_access_link", resend); err != nil {
		h.log.WarnContext(r.Context(), "resend access link dropped", logger.Error(err))
	}
	return core.Status(http.StatusAccepted)
}

// paddleWebhook answers 2xx for anything that must not be retried. Only
// processing failures return 5xx so Paddle redelivers.
func (h *Handler) paddleWebhook(r *http.Request) core.Response {
	ev, err := h.webhooks.ParseRequest(r)
	switch {
	case errors.Is(err, payment.ErrInvalidSignature):
		return core.Error(h.log, r, core.ErrUnauthorized)
	case errors.Is(err, payment.ErrIgnoredEvent):
		return core.Status(http.StatusOK)
	case err != nil:
		h.log.ErrorContext(r.Context(), "unusable payment webhook", logger.Error(err))
		return core.Status(http.StatusOK)
	}

	if err := h.svc.HandlePayment(r.Context(), ev); err != nil {
		if errors.Is(err, ErrInvalidEvent) {
			h.log.ErrorContext(r.Context(), "invalid payment event",
				logger.TransactionID(ev.TransactionID), logger.Error(err))
			return core.Status(http.StatusOK)
		}
		return core.Error(h.log, r, err)
	}
	return core.Status(http.StatusOK)
}
