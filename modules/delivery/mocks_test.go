package delivery_test

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/ventaro/storefront/modules/delivery"
	"github.com/ventaro/storefront/pkg/download"
	"github.com/ventaro/storefront/pkg/email"
	"github.com/ventaro/storefront/pkg/payment"
)

type MockLinker struct {
	mock.Mock
}

func (m *MockLinker) Link(ctx context.Context, key, filename string) (download.Link, error) {
	args := m.Called(ctx, key, filename)
	return args.Get(0).(download.Link), args.Error(1)
}

// recordingSender captures sent emails.
type recordingSender struct {
	mu   sync.Mutex
	sent []email.SendParams
	err  error
}

func (s *recordingSender) SendEmail(_ context.Context, p email.SendParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	s.sent = append(s.sent, p)
	return nil
}

func (s *recordingSender) Sent() []email.SendParams {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]email.SendParams(nil), s.sent...)
}

type MockDeliverer struct {
	mock.Mock
}

func (m *MockDeliverer) HandlePayment(ctx context.Context, ev payment.Event) error {
	return m.Called(ctx, ev).Error(0)
}

func (m *MockDeliverer) ResendLink(ctx context.Context, sessionID, addr string) error {
	return m.Called(ctx, sessionID, addr).Error(0)
}

func (m *MockDeliverer) Redeem(ctx context.Context, token string) (*delivery.Access, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Access), args.Error(1)
}

type stubParser struct {
	event payment.Event
	err   error
}

func (p stubParser) ParseRequest(*http.Request) (payment.Event, error) {
	return p.event, p.err
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
