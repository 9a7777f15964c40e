package accesstoken

import (
	"strings"
	"time"
)

// Claims is the payload carried inside an access token.
type Claims struct {
	SessionID string `json:"sessionId"`
	OrderID   string `json:"orderId,omitempty"`
	Email     string `json:"email"`
	ExpiresAt int64  `json:"exp"` // Unix seconds
}

// Expiry returns the expiration as a UTC time.Time.
func (c Claims) Expiry() time.Time {
	return time.Unix(c.ExpiresAt, 0).UTC()
}

// NormalizeEmail trims and lowercases an address.
// Tokens always embed the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
