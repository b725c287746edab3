// Package auth guards the API with a shared-secret header check.
package auth

import (
	"crypto/subtle"
	"net/http"

	"github.com/fakturio/faktury-api/internal/httpx"
)

// HeaderName carries the shared secret on every authenticated request.
const HeaderName = "X-Faktury-API-Key"

// RequireKey rejects requests whose API key header does not match key,
// before any backend call is made.
func RequireKey(key string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got := r.Header.Get(HeaderName)
		if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			httpx.Error(w, http.StatusUnauthorized, "Unauthorized - Invalid or missing API key")
			return
		}
		next.ServeHTTP(w, r)
	})
}
