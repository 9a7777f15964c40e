package accesstoken

import (
	"fmt"
	"strings"
)

// MinSecretLength is the minimum accepted secret length in bytes.
const MinSecretLength = 32

// ResolveSecret returns the first non-blank candidate.
// Candidates are given in priority order. There is no built-in fallback: an
// empty result is ErrNoSecret and the caller is expected to abort startup.
func ResolveSecret(candidates ...string) ([]byte, error) {
	for i, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if len(c) < MinSecretLength {
			return nil, fmt.Errorf("%w: candidate %d has %d bytes, need at least %d",
				ErrSecretTooShort, i, len(c), MinSecretLength)
		}
		return []byte(c), nil
	}
	return nil, ErrNoSecret
}

// MustResolveSecret is like ResolveSecret but panics on failure.
func MustResolveSecret(candidates ...string) []byte {
	secret, err := ResolveSecret(candidates...)
	if err != nil {
		panic(err)
	}
	return secret
}
