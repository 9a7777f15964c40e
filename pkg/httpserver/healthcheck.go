package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/ventaro/storefront/pkg/logger"
)

// Probe is a named dependency check used by Readiness.
type Probe struct {
	Name  string
	Check func(context.Context) error
}

// Liveness always answers 200 "ALIVE".
func Liveness() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ALIVE"))
	}
}

// Readiness runs probes in order, each bounded by timeout. It answers 200
// with every probe "ok", or 503 naming the failing probes. Probe errors are
// logged, never returned to the caller.
func Readiness(log *slog.Logger, timeout time.Duration, probes ...Probe) http.HandlerFunc {
	if log == nil {
		log = logger.Discard()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		result := make(map[string]string, len(probes))

		for _, p := range probes {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			err := p.Check(ctx)
			cancel()

			if err != nil {
				status = http.StatusServiceUnavailable
				result[p.Name] = "failed"
				log.ErrorContext(r.Context(), "readiness probe failed",
					slog.String("probe", p.Name), logger.Error(err))
				continue
			}
			result[p.Name] = "ok"
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(result)
	}
}
