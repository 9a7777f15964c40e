package purchase

import (
	"context"
	"slices"
	"sync"
	"time"
)

// MemoryStore is an in-process Store for tests and local development.
type MemoryStore struct {
	mu    sync.RWMutex
	items []Purchase
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

func (s *MemoryStore) Create(_ context.Context, p *Purchase) error {
	if err := Prepare(p, s.now()); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.items {
		if existing.TransactionID == p.TransactionID && existing.ProductID == p.ProductID {
			return ErrDuplicate
		}
	}
	s.items = append(s.items, *p)
	return nil
}

func (s *MemoryStore) ListBySession(_ context.Context, sessionID, email string) ([]Purchase, error) {
	email = normalizeEmail(email)
	return s.filter(func(p Purchase) bool {
		return p.SessionID == sessionID && p.Email == email
	}), nil
}

func (s *MemoryStore) ListByEmail(_ context.Context, email string) ([]Purchase, error) {
	email = normalizeEmail(email)
	return s.filter(func(p Purchase) bool { return p.Email == email }), nil
}

func (s *MemoryStore) filter(keep func(Purchase) bool) []Purchase {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Purchase
	for _, p := range s.items {
		if keep(p) {
			out = append(out, p)
		}
	}
	slices.SortStableFunc(out, func(a, b Purchase) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return out
}
