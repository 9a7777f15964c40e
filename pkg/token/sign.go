package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"strings"
)

// Delimiter separates the payload and signature segments.
const Delimiter = "."

var encoding = base64.RawURLEncoding

// Encode returns the unpadded base64url form of data.
func Encode(data []byte) string {
	return encoding.EncodeToString(data)
}

// Decode reverses Encode.
func Decode(segment string) ([]byte, error) {
	return encoding.DecodeString(segment)
}

// Sign returns the encoded HMAC-SHA256 of the encoded payload segment.
func Sign(secret []byte, payloadSegment string) string {
	h := hmac.New(sha256.New, secret)
	h.Write([]byte(payloadSegment))
	return Encode(h.Sum(nil))
}

// Equal compares two signature segments in constant time.
// Segments of different length are rejected without comparing content.
func Equal(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// Split breaks a token into its payload and signature segments.
// Both segments must be non-empty and the delimiter must appear exactly once.
func Split(tok string) (payload, signature string, ok bool) {
	payload, signature, found := strings.Cut(tok, Delimiter)
	if !found || payload == "" || signature == "" {
		return "", "", false
	}
	if strings.Contains(signature, Delimiter) {
		return "", "", false
	}
	return payload, signature, true
}

// Join assembles a token from its segments.
func Join(payload, signature string) string {
	return payload + Delimiter + signature
}
