// Package server wires the routes and the middleware chain.
package server

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fakturio/faktury-api/internal/auth"
	"github.com/fakturio/faktury-api/internal/handlers"
	"github.com/fakturio/faktury-api/internal/httpx"
)

// Version is reported by the service descriptor at /.
const Version = "1.0.0"

// New constructs the root http.Handler. syncH may be nil when Flowii is not
// configured; the sync route then answers with an explanatory error.
func New(apiKey string, log *logrus.Logger, fakturyH *handlers.FakturyHandler, analyticsH *handlers.AnalyticsHandler, syncH *handlers.SyncHandler) http.Handler {
	mux := http.NewServeMux()

	// Unauthenticated probes.
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]any{
			"status":    "OK",
			"message":   "Faktúry API beží",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]any{
			"name":    "Faktúry API",
			"version": Version,
			"status":  "running",
			"endpoints": map[string]string{
				"health":     "/health",
				"faktury":    "/api/faktury",
				"statistiky": "/api/statistiky",
				"analytics":  "/api/analytics",
				"sync":       "/api/sync/flowii",
			},
		})
	})

	// Everything under /api requires the shared secret.
	api := func(h http.HandlerFunc) http.Handler {
		return auth.RequireKey(apiKey, h)
	}

	mux.Handle("GET /api/faktury", api(fakturyH.List))
	mux.Handle("GET /api/faktury/search", api(fakturyH.Search))
	mux.Handle("GET /api/faktury/{cislo}", api(fakturyH.Get))
	mux.Handle("POST /api/faktury", api(fakturyH.Create))
	mux.Handle("PUT /api/faktury/{cislo}", api(fakturyH.Update))
	mux.Handle("PUT /api/faktury/{cislo}/zaplatit", api(fakturyH.MarkPaid))
	mux.Handle("DELETE /api/faktury/{cislo}", api(fakturyH.Delete))

	mux.Handle("GET /api/statistiky", api(analyticsH.Statistiky))
	mux.Handle("GET /api/analytics/firmy", api(analyticsH.Firmy))
	mux.Handle("GET /api/analytics/obchodnici", api(analyticsH.Obchodnici))
	mux.Handle("GET /api/analytics/mesacne", api(analyticsH.Mesacne))
	mux.Handle("GET /api/analytics/splatnost", api(analyticsH.Splatnost))
	mux.Handle("GET /api/analytics/top-klienti", api(analyticsH.TopKlienti))

	mux.Handle("POST /api/sync/flowii", api(func(w http.ResponseWriter, r *http.Request) {
		if syncH == nil {
			httpx.Error(w, http.StatusServiceUnavailable, "Flowii synchronizácia nie je nakonfigurovaná")
			return
		}
		syncH.Run(w, r)
	}))

	return withCORS(withRecover(log, withLogging(log, mux)))
}

func withLogging(log *logrus.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func withRecover(log *logrus.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.WithField("panic", rec).Error("handler panicked")
				httpx.Error(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// withCORS allows any origin, the documented methods and the API key header.
// The API has no browser session to protect, only the shared key.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+auth.HeaderName)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
