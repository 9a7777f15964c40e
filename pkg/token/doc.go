// Package token provides compact, signed tokens for embedding JSON payloads.
//
// Token format: base64url(json(payload)) "." base64url(HMAC-SHA256(secret, base64url(json(payload))))
//
// Both segments use unpadded base64url, so neither can contain the "."
// delimiter and the whole token can be placed in a URL query parameter
// without percent-encoding. The MAC is computed over the encoded payload
// segment and is never truncated.
//
// # Usage
//
//	type Payload struct {
//	    UserID string `json:"uid"`
//	    Exp    int64  `json:"exp"`
//	}
//
//	tok, err := token.Generate(Payload{"42", time.Now().Add(time.Hour).Unix()}, secret)
//	if err != nil {
//	    return err
//	}
//
//	p, err := token.Parse[Payload](tok, secret)
//	if err != nil {
//	    return err
//	}
//
// Parse returns ErrInvalidToken for structurally broken tokens,
// ErrSignatureInvalid for MAC mismatches and ErrMalformedPayload when the
// signed payload cannot be decoded. The package does not interpret payload
// fields such as expiration; that is left to callers.
package token
