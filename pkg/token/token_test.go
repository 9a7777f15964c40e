package token_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ventaro/storefront/pkg/token"
)

type testPayload struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

var testSecret = []byte("secret-secret-secret-secret-1234")

func TestGenerateAndParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload testPayload
		secret  []byte
	}{
		{name: "valid token", payload: testPayload{ID: 1, Name: "test"}, secret: testSecret},
		{name: "empty secret", payload: testPayload{ID: 1, Name: "test"}, secret: nil},
		{name: "empty payload", payload: testPayload{}, secret: testSecret},
		{name: "unicode payload", payload: testPayload{ID: 7, Name: "Zoë ✓"}, secret: testSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tok, err := token.Generate(tt.payload, tt.secret)
			require.NoError(t, err)

			parts := strings.Split(tok, token.Delimiter)
			require.Len(t, parts, 2)

			got, err := token.Parse[testPayload](tok, tt.secret)
			require.NoError(t, err)
			assert.Equal(t, tt.payload, got)
		})
	}
}

func TestGenerate_URLSafe(t *testing.T) {
	t.Parallel()

	// Payloads producing '+' and '/' in standard base64 must not leak them.
	tok, err := token.Generate(testPayload{ID: 1 << 30, Name: "??>>~~"}, testSecret)
	require.NoError(t, err)

	assert.NotContains(t, tok, "+")
	assert.NotContains(t, tok, "/")
	assert.NotContains(t, tok, "=")
}

func TestParse_InvalidCases(t *testing.T) {
	t.Parallel()

	valid, err := token.Generate(testPayload{ID: 1, Name: "test"}, testSecret)
	require.NoError(t, err)
	payloadSeg, sigSeg, ok := token.Split(valid)
	require.True(t, ok)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "no delimiter", token: "invalid", wantErr: token.ErrInvalidToken},
		{name: "empty", token: "", wantErr: token.ErrInvalidToken},
		{name: "empty payload segment", token: "." + sigSeg, wantErr: token.ErrInvalidToken},
		{name: "empty signature segment", token: payloadSeg + ".", wantErr: token.ErrInvalidToken},
		{name: "three segments", token: valid + ".extra", wantErr: token.ErrInvalidToken},
		{name: "swapped segments", token: sigSeg + "." + payloadSeg, wantErr: token.ErrSignatureInvalid},
		{name: "invalid base64 payload", token: "!@#$.sig", wantErr: token.ErrSignatureInvalid},
		{name: "short signature", token: payloadSeg + ".abc", wantErr: token.ErrSignatureInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := token.Parse[testPayload](tt.token, testSecret)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParse_SignedGarbage(t *testing.T) {
	t.Parallel()

	payloadSeg := token.Encode([]byte("not json"))
	tok := token.Join(payloadSeg, token.Sign(testSecret, payloadSeg))

	_, err := token.Parse[testPayload](tok, testSecret)
	assert.ErrorIs(t, err, token.ErrMalformedPayload)
}

func TestSignatureVerification(t *testing.T) {
	t.Parallel()

	tok, err := token.Generate(testPayload{ID: 1, Name: "test"}, testSecret)
	require.NoError(t, err)

	_, err = token.Parse[testPayload](tok, []byte("another-secret-another-secret-00"))
	assert.ErrorIs(t, err, token.ErrSignatureInvalid)

	_, sigSeg, _ := token.Split(tok)
	tampered := token.Join(token.Encode([]byte(`{"id":2,"name":"hacked"}`)), sigSeg)
	_, err = token.Parse[testPayload](tampered, testSecret)
	assert.ErrorIs(t, err, token.ErrSignatureInvalid)
}

func TestEqual(t *testing.T) {
	t.Parallel()

	assert.True(t, token.Equal("abc", "abc"))
	assert.False(t, token.Equal("abc", "abd"))
	assert.False(t, token.Equal("abc", "abcd"))
	assert.True(t, token.Equal("", ""))
}

func TestSplit(t *testing.T) {
	t.Parallel()

	p, s, ok := token.Split("a.b")
	require.True(t, ok)
	assert.Equal(t, "a", p)
	assert.Equal(t, "b", s)

	for _, in := range []string{"", ".", "a.", ".b", "ab", "a.b.c"} {
		_, _, ok := token.Split(in)
		assert.False(t, ok, in)
	}
}
