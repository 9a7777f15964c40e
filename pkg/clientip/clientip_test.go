package clientip_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ventaro/storefront/pkg/clientip"
)

func TestFromRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		remote  string
		headers map[string]string
		trusted []string
		want    string
	}{
		{"remote addr", "203.0.113.7:5123", nil, nil, "203.0.113.7"},
		{"remote without port", "203.0.113.7", nil, nil, "203.0.113.7"},
		{"ipv6 remote", "[2001:db8::1]:443", nil, nil, "2001:db8::1"},
		{"mapped ipv4", "[::ffff:198.51.100.2]:80", nil, nil, "198.51.100.2"},
		{"untrusted header ignored", "10.0.0.1:1", map[string]string{"X-Forwarded-For": "1.2.3.4"}, nil, "10.0.0.1"},
		{"trusted header", "10.0.0.1:1", map[string]string{"CF-Connecting-IP": "1.2.3.4"}, []string{"CF-Connecting-IP"}, "1.2.3.4"},
		{"forwarded list", "10.0.0.1:1", map[string]string{"X-Forwarded-For": "junk, 5.6.7.8, 9.9.9.9"}, []string{"X-Forwarded-For"}, "5.6.7.8"},
		{"header order", "10.0.0.1:1", map[string]string{"X-Real-IP": "2.2.2.2", "CF-Connecting-IP": "1.1.1.1"}, []string{"X-Real-IP", "CF-Connecting-IP"}, "2.2.2.2"},
		{"invalid header falls back", "10.0.0.1:1", map[string]string{"X-Real-IP": "nope"}, []string{"X-Real-IP"}, "10.0.0.1"},
		{"garbage remote", "not-an-ip", nil, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientip.FromRequest(r, tt.trusted...))
		})
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var got string
	h := clientip.Middleware("X-Real-IP")(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = clientip.FromContext(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Real-IP", "198.51.100.9")
	h.ServeHTTP(httptest.NewRecorder(), r)

	assert.Equal(t, "198.51.100.9", got)
}
