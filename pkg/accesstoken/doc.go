// Package accesstoken issues and verifies stateless, signed, time-bounded
// access tokens ("magic links") that let a buyer reach their purchases
// without logging in.
//
// A token carries Claims (session ID, optional order ID, lowercased email and
// an absolute expiration) signed with HMAC-SHA256 under a single
// deployment-wide secret. Nothing is stored server-side: any process holding
// the same secret can verify a token, and a token dies when it expires or
// when the secret is rotated.
//
// # Usage
//
//	secret, err := accesstoken.ResolveSecret(cfg.Secrets()...)
//	if err != nil {
//	    log.Fatal(err) // refuse to start without a configured secret
//	}
//	m, err := accesstoken.New(secret)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	tok, err := m.Issue("sess_123", "User@Example.com", accesstoken.WithOrderID("ord_1"))
//
//	claims, err := m.Verify(tok)
//	if err != nil {
//	    // errors.Is(err, accesstoken.ErrInvalidToken) is always true here
//	}
//
// # Verification outcome
//
// Verify returns exactly one error value, ErrInvalidToken, regardless of
// whether the token was malformed, forged, tampered with or expired. Callers
// must present a single generic "invalid or expired link" message.
//
// # Concurrency
//
// A Manager is immutable after New returns and may be shared by any number
// of goroutines.
package accesstoken
