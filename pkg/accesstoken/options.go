package accesstoken

import "time"

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the time source. Used by tests to simulate elapsed time.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithDefaultTTL sets the lifetime applied when Issue gets no WithTTL.
func WithDefaultTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.defaultTTL = ttl
	}
}

// IssueOption customises a single Issue call.
type IssueOption func(*issueParams)

type issueParams struct {
	orderID string
	ttl     time.Duration
	ttlSet  bool
}

// WithOrderID attaches an order identifier to the claims.
func WithOrderID(id string) IssueOption {
	return func(p *issueParams) {
		p.orderID = id
	}
}

// WithTTL overrides the token lifetime. It must be a positive whole number of seconds.
func WithTTL(ttl time.Duration) IssueOption {
	return func(p *issueParams) {
		p.ttl = ttl
		p.ttlSet = true
	}
}
