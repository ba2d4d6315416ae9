package auth

import (
	"context"
	"net/http"
	"strings"
)

// contextKey is an unexported type for this package's context keys.
// Using a private type (instead of a plain string) means no other package can
// collide with or shadow the principal stored in the request context.
type contextKey string

const principalKey contextKey = "principal"

// RequireAuth enforces bearer-token authentication on protected routes.
//
// It reads the Authorization header ("Bearer <token>"), validates the token,
// and stores the decoded claims in the request context. The two failure modes
// get distinct statuses, matching what the admin frontend expects:
//
//	no token at all            → 401 "Access token is required"
//	invalid or expired token   → 403 "Invalid or expired token"
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeAuthError(w, http.StatusUnauthorized, "Access token is required")
				return
			}

			claims, err := tokens.Validate(token)
			if err != nil {
				writeAuthError(w, http.StatusForbidden, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFromContext retrieves the authenticated admin's claims from the
// request context. Returns (nil, false) when the request never passed through
// RequireAuth.
func PrincipalFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(principalKey).(*Claims)
	return c, ok && c != nil
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
// Returns "" when the header is absent or not in bearer form.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// writeAuthError writes the small JSON error body the middleware uses.
// It doesn't share handler.writeJSON to keep the import graph acyclic
// (handler already imports auth).
func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"message":"` + message + `"}`))
}
