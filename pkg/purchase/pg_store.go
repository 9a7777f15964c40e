package purchase

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ventaro/storefront/pkg/pg"
)

// DB is the subset of pgxpool.Pool / pgx.Tx used by PGStore.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PGStore is a PostgreSQL-backed Store. See migrations/ for the schema.
type PGStore struct {
	db  DB
	now func() time.Time
}

func NewPGStore(db DB) *PGStore {
	return &PGStore{db: db, now: time.Now}
}

const insertPurchase = `
INSERT INTO purchases (
    id, session_id, order_id, transaction_id, email,
    product_id, product_name, file_key, amount_cents, currency, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

func (s *PGStore) Create(ctx context.Context, p *Purchase) error {
	if err := Prepare(p, s.now()); err != nil {
		return err
	}

	_, err := s.db.Exec(ctx, insertPurchase,
		p.ID, p.SessionID, p.OrderID, p.TransactionID, p.Email,
		p.ProductID, p.ProductName, p.FileKey, p.AmountCents, p.Currency, p.CreatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("purchase: insert: %w", err)
	}
	return nil
}

const selectPurchases = `
SELECT id, session_id, order_id, transaction_id, email,
       product_id, product_name, file_key, amount_cents, currency, created_at
FROM purchases`

func (s *PGStore) ListBySession(ctx context.Context, sessionID, email string) ([]Purchase, error) {
	return s.list(ctx, selectPurchases+` WHERE session_id = $1 AND email = $2 ORDER BY created_at, id`,
		sessionID, normalizeEmail(email))
}

func (s *PGStore) ListByEmail(ctx context.Context, email string) ([]Purchase, error) {
	return s.list(ctx, selectPurchases+` WHERE email = $1 ORDER BY created_at, id`, normalizeEmail(email))
}

func (s *PGStore) list(ctx context.Context, query string, args ...any) ([]Purchase, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("purchase: query: %w", err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Purchase, error) {
		var p Purchase
		err := row.Scan(
			&p.ID, &p.SessionID, &p.OrderID, &p.TransactionID, &p.Email,
			&p.ProductID, &p.ProductName, &p.FileKey, &p.AmountCents, &p.Currency, &p.CreatedAt,
		)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("purchase: scan: %w", err)
	}
	return out, nil
}
