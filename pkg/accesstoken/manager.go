package accesstoken

import (
	"fmt"
	"strings"
	"time"

	"github.com/ventaro/storefront/pkg/token"
)

// DefaultTTL is the token lifetime used when none is configured.
const DefaultTTL = 24 * time.Hour

// Manager issues and verifies access tokens under one secret.
type Manager struct {
	secret     []byte
	defaultTTL time.Duration
	now        func() time.Time
}

// New builds a Manager for an already resolved secret.
func New(secret []byte, opts ...Option) (*Manager, error) {
	if len(secret) == 0 {
		return nil, ErrNoSecret
	}
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("%w: got %d bytes, need at least %d", ErrSecretTooShort, len(secret), MinSecretLength)
	}

	m := &Manager{
		secret:     append([]byte(nil), secret...),
		defaultTTL: DefaultTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	if err := validateTTL(m.defaultTTL); err != nil {
		return nil, err
	}

	return m, nil
}

// DefaultTTL reports the lifetime applied to tokens issued without WithTTL.
func (m *Manager) DefaultTTL() time.Duration {
	return m.defaultTTL
}

// Issue signs a new token for sessionID and email.
// The email is normalized and exp is computed as now + ttl.
func (m *Manager) Issue(sessionID, email string, opts ...IssueOption) (string, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return "", ErrEmptySessionID
	}
	email = NormalizeEmail(email)
	if email == "" {
		return "", ErrEmptyEmail
	}

	p := issueParams{ttl: m.defaultTTL}
	for _, opt := range opts {
		opt(&p)
	}
	if err := validateTTL(p.ttl); err != nil {
		return "", err
	}

	claims := Claims{
		SessionID: sessionID,
		OrderID:   strings.TrimSpace(p.orderID),
		Email:     email,
		ExpiresAt: m.now().Unix() + int64(p.ttl/time.Second),
	}

	return token.Generate(claims, m.secret)
}

// Verify checks a token and returns its claims.
// Every failure, whatever its cause, is reported as ErrInvalidToken.
func (m *Manager) Verify(tok string) (Claims, error) {
	claims, err := token.Parse[Claims](tok, m.secret)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	if claims.ExpiresAt == 0 || claims.ExpiresAt < m.now().Unix() {
		return Claims{}, ErrInvalidToken
	}

	if strings.TrimSpace(claims.SessionID) == "" || strings.TrimSpace(claims.Email) == "" {
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}

func validateTTL(ttl time.Duration) error {
	if ttl < time.Second || ttl%time.Second != 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTTL, ttl)
	}
	return nil
}
