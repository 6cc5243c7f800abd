package api

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/ekurt/newspulse/internal/api/handlers"
	"github.com/ekurt/newspulse/pkg/config"
	"github.com/ekurt/newspulse/pkg/logger"
)

// NewRouter creates and configures the HTTP router
// SSOT: routing configuration lives in this function
func NewRouter(h *handlers.Handler, cfg *config.Config, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Read endpoints
	api.HandleFunc("/leaderboard", h.GetLeaderboard).Methods("GET")
	api.HandleFunc("/pool", h.GetPool).Methods("GET")
	api.HandleFunc("/metrics", h.GetMetrics).Methods("GET")
	api.HandleFunc("/comments", h.GetComments).Methods("GET")
	api.HandleFunc("/history", h.GetHistory).Methods("GET")

	// Pass triggers, guarded by the cron secret
	api.Handle("/scan", cronAuthMiddleware(cfg.CronSecret)(http.HandlerFunc(h.TriggerScan))).Methods("GET", "POST")
	api.Handle("/measure", cronAuthMiddleware(cfg.CronSecret)(http.HandlerFunc(h.TriggerMeasure))).Methods("GET", "POST")

	// Live leaderboard stream
	r.HandleFunc("/ws", h.ServeWS).Methods("GET")

	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "newspulse-api",
	})
}

// cronAuthMiddleware guards the pass triggers: the shared secret comes
// either as ?secret= (external cron services) or a bearer token. An
// empty configured secret leaves the endpoints open for development.
func cronAuthMiddleware(secret string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				next.ServeHTTP(w, r)
				return
			}

			provided := r.URL.Query().Get("secret")
			if provided == "" {
				auth := r.Header.Get("Authorization")
				provided = strings.TrimPrefix(auth, "Bearer ")
			}

			if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
