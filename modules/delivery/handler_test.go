package delivery_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ventaro/storefront/modules/delivery"
	"github.com/ventaro/storefront/pkg/async"
	"github.com/ventaro/storefront/pkg/payment"
)

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type busyBackground struct{}

func (busyBackground) Go(context.Context, string, func(context.Context) error) error {
	return async.ErrBusy
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Code
}

func TestHandler_Access(t *testing.T) {
	t.Parallel()

	t.Run("granted", func(t *testing.T) {
		t.Parallel()

		svc := new(MockDeliverer)
		exp := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
		svc.On("Redeem", mock.Anything, "tok.sig").Return(&delivery.Access{
			Email:     "buyer@example.com",
			SessionID: "sess_123",
			ExpiresAt: exp,
			Items:     []delivery.AccessItem{{ProductID: "pro_1", Name: "Book", DownloadURL: "https://files/x"}},
		}, nil)

		rec := serve(delivery.NewHandler(svc, nil).Handle(), http.MethodGet, "/access?token=tok.sig", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"data":{
			"email":"buyer@example.com",
			"session_id":"sess_123",
			"expires_at":"2026-03-02T12:00:00Z",
			"items":[{"product_id":"pro_1","name":"Book","download_url":"https://files/x"}]
		}}`, rec.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("denied and missing token look the same", func(t *testing.T) {
		t.Parallel()

		svc := new(MockDeliverer)
		svc.On("Redeem", mock.Anything, "bad").Return(nil, delivery.ErrAccessDenied)
		h := delivery.NewHandler(svc, nil).Handle()

		for _, target := range []string{"/access?token=bad", "/access"} {
			rec := serve(h, http.MethodGet, target, "")
			assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
			assert.Equal(t, "invalid_or_expired_link", errorCode(t, rec), target)
		}
	})

	t.Run("internal failure", func(t *testing.T) {
		t.Parallel()

		svc := new(MockDeliverer)
		svc.On("Redeem", mock.Anything, "tok").Return(nil, errors.New("db down"))

		rec := serve(delivery.NewHandler(svc, nil).Handle(), http.MethodGet, "/access?token=tok", "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "db down")
	})
}

func TestHandler_AccessPath(t *testing.T) {
	t.Parallel()

	svc := new(MockDeliverer)
	svc.On("Redeem", mock.Anything, "tok").Return(&delivery.Access{Email: "a@b.co"}, nil).Once()
	svc.On("ResendLink", mock.Anything, "sess_1", "a@b.co").Return(nil).Once()
	h := delivery.NewHandler(svc, nil, delivery.WithAccessPath("downloads/")).Handle()

	rec := serve(h, http.MethodGet, "/downloads?token=tok", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(h, http.MethodPost, "/downloads/resend", `{"session_id":"sess_1","email":"a@b.co"}`)
	assert.Equal(t, http.StatusAccepted, rec.Code)

	rec = serve(h, http.MethodGet, "/access?token=tok", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandler_Resend(t *testing.T) {
	t.Parallel()

	t.Run("always accepted", func(t *testing.T) {
		t.Parallel()

		svc := new(MockDeliverer)
		svc.On("ResendLink", mock.Anything, "sess_1", "a@b.co").Return(nil).Once()
		svc.On("ResendLink", mock.Anything, "sess_2", "a@b.co").Return(errors.New("mail down")).Once()
		h := delivery.NewHandler(svc, nil).Handle()

		rec := serve(h, http.MethodPost, "/access/resend", `{"session_id":"sess_1","email":"a@b.co"}`)
		assert.Equal(t, http.StatusAccepted, rec.Code)

		rec = serve(h, http.MethodPost, "/access/resend", `{"session_id":"sess_2","email":"a@b.co"}`)
		assert.Equal(t, http.StatusAccepted, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()

		svc := new(MockDeliverer)
		rec := serve(delivery.NewHandler(svc, nil).Handle(), http.MethodPost, "/access/resend", `{"session_id":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "ResendLink", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("runs in background", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		svc := new(MockDeliverer)
		svc.On("ResendLink", mock.Anything, "sess_1", "a@b.co").
			Run(func(mock.Arguments) { <-release }).
			Return(nil).Once()

		runner := async.NewRunner()
		h := delivery.NewHandler(svc, nil, delivery.WithBackground(runner)).Handle()

		rec := serve(h, http.MethodPost, "/access/resend", `{"session_id":"sess_1","email":"a@b.co"}`)
		assert.Equal(t, http.StatusAccepted, rec.Code, "response must not wait for the send")

		close(release)
		require.NoError(t, runner.Close(context.Background()))
		svc.AssertExpectations(t)
	})

	t.Run("background full", func(t *testing.T) {
		t.Parallel()

		svc := new(MockDeliverer)
		h := delivery.NewHandler(svc, nil, delivery.WithBackground(busyBackground{})).Handle()

		rec := serve(h, http.MethodPost, "/access/resend", `{"session_id":"sess_1","email":"a@b.co"}`)
		assert.Equal(t, http.StatusAccepted, rec.Code)
		svc.AssertNotCalled(t, "ResendLink", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("limiter applied", func(t *testing.T) {
		t.Parallel()

		svc := new(MockDeliverer)
		block := func(http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			})
		}
		h := delivery.NewHandler(svc, nil, delivery.WithResendLimiter(block)).Handle()

		rec := serve(h, http.MethodPost, "/access/resend", `{"session_id":"s","email":"a@b.co"}`)
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)

		svc.On("Redeem", mock.Anything, "t").Return(nil, delivery.ErrAccessDenied)
		rec = serve(h, http.MethodGet, "/access?token=t", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "limiter only guards resend")
	})
}

func TestHandler_PaddleWebhook(t *testing.T) {
	t.Parallel()

	ev := payment.Event{TransactionID: "txn_1", SessionID: "s", Email: "a@b.co"}

	tests := []struct {
		name       string
		parseErr   error
		handleErr  error
		wantStatus int
		wantHandle bool
	}{
		{"processed", nil, nil, http.StatusOK, true},
		{"bad signature", payment.ErrInvalidSignature, nil, http.StatusUnauthorized, false},
		{"ignored event", payment.ErrIgnoredEvent, nil, http.StatusOK, false},
		{"malformed event", payment.ErrMalformedEvent, nil, http.StatusOK, false},
		{"invalid event", nil, delivery.ErrInvalidEvent, http.StatusOK, true},
		{"processing failure", nil, errors.New("db down"), http.StatusInternalServerError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := new(MockDeliverer)
			if tt.wantHandle {
				svc.On("HandlePayment", mock.Anything, ev).Return(tt.handleErr).Once()
			}
			h := delivery.NewHandler(svc, stubParser{event: ev, err: tt.parseErr}).Handle()

			rec := serve(h, http.MethodPost, "/webhooks/paddle", "")
			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
			if !tt.wantHandle {
				svc.AssertNotCalled(t, "HandlePayment", mock.Anything, mock.Anything)
			}
		})
	}
}
