package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/projecthelena/roster/internal/logging"
)

// Pinger reports whether the user source can currently be read.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Healthz is the liveness probe.
func Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz is the readiness probe. It fails while the user source is unreachable.
func Readyz(p Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := p.Ping(ctx); err != nil {
			log.Printf("WARN: readiness check failed: %s", logging.Sanitize(err.Error()))
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
