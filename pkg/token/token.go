package token

import (
	"encoding/json"
	"errors"
)

// Generate JSON-encodes payload and appends an HMAC-SHA256 signature over the encoded payload.
func Generate[T any](payload T, secret []byte) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", errors.Join(ErrMalformedPayload, err)
	}

	payloadSeg := Encode(data)
	return Join(payloadSeg, Sign(secret, payloadSeg)), nil
}

// Parse verifies the token's signature and decodes the JSON payload into T.
// The signature is checked before the payload is decoded, so unsigned input
// never reaches the JSON decoder.
func Parse[T any](tok string, secret []byte) (T, error) {
	var payload T

	payloadSeg, sigSeg, ok := Split(tok)
	if !ok {
		return payload, ErrInvalidToken
	}

	if !Equal(Sign(secret, payloadSeg), sigSeg) {
		return payload, ErrSignatureInvalid
	}

	data, err := Decode(payloadSeg)
	if err != nil {
		return payload, errors.Join(ErrMalformedPayload, err)
	}

	if err := json.Unmarshal(data, &payload); err != nil {
		var zero T
		return zero, errors.Join(ErrMalformedPayload, err)
	}

	return payload, nil
}
