// Package purchase stores the records that an access token unlocks: one row
// per product bought in a checkout session.
package purchase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ventaro/storefront/pkg/validator"
)

var (
	ErrDuplicate = errors.New("purchase: already recorded")
	ErrInvalid   = errors.New("purchase: invalid record")
)

// Purchase is a single purchased product.
type Purchase struct {
	ID            uuid.UUID
	SessionID     string
	OrderID       string
	TransactionID string
	Email         string
	ProductID     string
	ProductName   string
	FileKey       string // object key of the downloadable file, empty for non-file products
	AmountCents   int64
	Currency      string
	CreatedAt     time.Time
}

// Store is the persistence contract used by the delivery flow.
type Store interface {
	// Create inserts p. Recording the same (TransactionID, ProductID) twice yields ErrDuplicate.
	Create(ctx context.Context, p *Purchase) error
	// ListBySession returns purchases matching both the session and the email, oldest first.
	ListBySession(ctx context.Context, sessionID, email string) ([]Purchase, error)
	// ListByEmail returns every purchase for email, oldest first.
	ListByEmail(ctx context.Context, email string) ([]Purchase, error)
}

// Prepare fills defaults and normalizes p before it is stored.
func Prepare(p *Purchase, now time.Time) error {
	p.SessionID = strings.TrimSpace(p.SessionID)
	p.TransactionID = strings.TrimSpace(p.TransactionID)
	p.ProductID = strings.TrimSpace(p.ProductID)
	p.Email = normalizeEmail(p.Email)

	if err := validator.Apply(
		validator.RequiredString("session_id", p.SessionID),
		validator.RequiredString("transaction_id", p.TransactionID),
		validator.RequiredString("product_id", p.ProductID),
		validator.ValidEmail("email", p.Email),
	); err != nil {
		return errors.Join(ErrInvalid, err)
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now.UTC()
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
