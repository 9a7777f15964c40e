package httpserver_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ventaro/storefront/pkg/httpserver"
	"github.com/ventaro/storefront/pkg/logger"
)

func TestRequestLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf))
	h := httpserver.RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/access?token=secret.value", nil))

	out := buf.String()
	assert.Contains(t, out, `"path":"/access"`)
	assert.Contains(t, out, `"status":401`)
	assert.NotContains(t, out, "secret.value")
}
