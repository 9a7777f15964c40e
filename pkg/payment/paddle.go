package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	paddle "github.com/PaddleHQ/paddle-go-sdk/v4"
)

// SignatureHeader carries the Paddle webhook signature.
const SignatureHeader = "Paddle-Signature"

// maxWebhookBody caps how much of a webhook body is read.
const maxWebhookBody = 1 << 20

// Config is read from the environment with pkg/config.
type Config struct {
	WebhookSecret string `env:"PADDLE_WEBHOOK_SECRET,required"`
}

// Verifier checks a webhook request signature. *paddle.WebhookVerifier
// satisfies it.
type Verifier interface {
	Verify(req *http.Request) (bool, error)
}

// Paddle parses Paddle Billing webhooks.
type Paddle struct {
	verifier Verifier
}

// NewPaddle builds a parser that verifies signatures with cfg.WebhookSecret.
func NewPaddle(cfg Config) (*Paddle, error) {
	if strings.TrimSpace(cfg.WebhookSecret) == "" {
		return nil, ErrInvalidConfig
	}
	return NewPaddleWithVerifier(paddle.NewWebhookVerifier(cfg.WebhookSecret)), nil
}

// NewPaddleWithVerifier builds a parser around a custom verifier.
func NewPaddleWithVerifier(v Verifier) *Paddle {
	return &Paddle{verifier: v}
}

// ParseRequest verifies and parses an incoming webhook request.
func (p *Paddle) ParseRequest(req *http.Request) (Event, error) {
	body, err := io.ReadAll(io.LimitReader(req.Body, maxWebhookBody))
	if err != nil {
		return Event{}, fmt.Errorf("%w: read body: %v", ErrMalformedEvent, err)
	}
	return p.ParseWebhook(req.Context(), body, req.Header.Get(SignatureHeader))
}

// ParseWebhook verifies signature over payload and extracts the completed
// transaction. Events other than transaction.completed yield ErrIgnoredEvent.
func (p *Paddle) ParseWebhook(ctx context.Context, payload []byte, signature string) (Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "/webhook", bytes.NewReader(payload))
	if err != nil {
		return Event{}, fmt.Errorf("payment: build verification request: %w", err)
	}
	req.Header.Set(SignatureHeader, signature)

	valid, err := p.verifier.Verify(req)
	if err != nil || !valid {
		return Event{}, ErrInvalidSignature
	}

	var env paddleEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if env.EventType != EventTransactionCompleted {
		return Event{}, fmt.Errorf("%w: %s", ErrIgnoredEvent, env.EventType)
	}

	var txn paddleTransaction
	if err := json.Unmarshal(env.Data, &txn); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if txn.ID == "" {
		return Event{}, fmt.Errorf("%w: missing transaction id", ErrMalformedEvent)
	}

	event := Event{
		EventID:       env.EventID,
		TransactionID: txn.ID,
		SessionID:     customString(txn.CustomData, "session_id"),
		OrderID:       customString(txn.CustomData, "order_id"),
		Email:         strings.ToLower(customString(txn.CustomData, "email")),
		Currency:      txn.CurrencyCode,
	}
	if event.SessionID == "" || event.Email == "" {
		return Event{}, ErrMissingCustom
	}
	if ts, err := time.Parse(time.RFC3339Nano, env.OccurredAt); err == nil {
		event.OccurredAt = ts
	}

	items, err := txn.items()
	if err != nil {
		return Event{}, err
	}
	event.Items = items

	return event, nil
}

type paddleEnvelope struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	OccurredAt string          `json:"occurred_at"`
	Data       json.RawMessage `json:"data"`
}

type paddleTransaction struct {
	ID           string         `json:"id"`
	Status       string         `json:"status"`
	CurrencyCode string         `json:"currency_code"`
	CustomData   map[string]any `json:"custom_data"`
	Details      struct {
		LineItems []paddleLineItem `json:"line_items"`
	} `json:"details"`
}

type paddleLineItem struct {
	PriceID  string `json:"price_id"`
	Quantity int    `json:"quantity"`
	Totals   struct {
		Total string `json:"total"`
	} `json:"totals"`
	Product struct {
		ID         string         `json:"id"`
		Name       string         `json:"name"`
		CustomData map[string]any `json:"custom_data"`
	} `json:"product"`
}

func (t paddleTransaction) items() ([]Item, error) {
	if len(t.Details.LineItems) == 0 {
		return nil, fmt.Errorf("%w: transaction has no line items", ErrMalformedEvent)
	}

	items := make([]Item, 0, len(t.Details.LineItems))
	for _, li := range t.Details.LineItems {
		if li.Product.ID == "" {
			return nil, fmt.Errorf("%w: line item without product id", ErrMalformedEvent)
		}

		var amount int64
		if li.Totals.Total != "" {
			v, err := strconv.ParseInt(li.Totals.Total, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line item total %q", ErrMalformedEvent, li.Totals.Total)
			}
			amount = v
		}

		items = append(items, Item{
			ProductID:   li.Product.ID,
			PriceID:     li.PriceID,
			Name:        li.Product.Name,
			FileKey:     customString(li.Product.CustomData, "file_key"),
			Quantity:    li.Quantity,
			AmountCents: amount,
		})
	}
	return items, nil
}

// customString reads a string value from Paddle custom data. Non-string values
// are treated as absent.
func customString(data map[string]any, key string) string {
	v, _ := data[key].(string)
	return strings.TrimSpace(v)
}
