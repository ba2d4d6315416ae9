package middleware

import "net/http"

// CORS implements the cross-origin policy for the browser frontend: an
// explicit origin allow-list with credentials enabled.
//
// WHY NOT Access-Control-Allow-Origin: * ?
// The wildcard is incompatible with credentials — browsers refuse to send
// cookies or Authorization headers to a wildcard origin. So we echo back the
// request's Origin only when it's on the allow-list, and add a Vary header so
// caches don't serve one origin's response to another.
type CORS struct {
	allowedOrigins map[string]bool
}

// NewCORS creates the middleware from the configured origin allow-list.
func NewCORS(origins []string) *CORS {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return &CORS{allowedOrigins: allowed}
}

// Handler applies the CORS headers and short-circuits preflight requests.
//
// Preflight (OPTIONS) requests are answered directly with 204 for every
// route — they must never hit auth or rate limiting, or the browser's
// preflight would fail before the real request is even sent.
func (c *CORS) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		if origin != "" && c.allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With, Accept")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Add("Vary", "Origin")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
