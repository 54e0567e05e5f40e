package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"golang.org/x/time/rate"

	"github.com/projecthelena/roster/internal/config"
	"github.com/projecthelena/roster/internal/db"
	_ "github.com/projecthelena/roster/internal/docs"
	"github.com/projecthelena/roster/internal/service"
)

// SecurityHeaders middleware adds essential security headers to all responses.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// NewRouter builds the HTTP router serving the users API, health probes and docs.
func NewRouter(store db.Store, cfg *config.Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Only trust X-Forwarded-For when deployed behind a known proxy.
	if cfg.TrustProxy {
		r.Use(middleware.RealIP)
	}

	r.Use(SecurityHeaders)

	apiLimiter := NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	userH := NewUserHandler(service.NewUserService(store))

	// Probes stay outside /api so they are never rate limited.
	r.Get("/healthz", Healthz)
	r.Get("/readyz", Readyz(store))

	r.Route("/api", func(api chi.Router) {
		api.Use(RateLimitMiddleware(apiLimiter))

		api.Get("/users", userH.GetAllUsers)

		api.Get("/docs/*", httpSwagger.Handler(
			httpSwagger.URL("/api/docs/doc.json"),
		))
	})

	return r
}

// writeJSON encodes data before touching the ResponseWriter so the status
// line and body are written exactly once.
func writeJSON(w http.ResponseWriter, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
