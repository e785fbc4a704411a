package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/Rezosh/server-stats-website/pkg/slogx"
)

// SessionVerifier validates a bearer session token and returns the Discord
// user id it was minted for.
type SessionVerifier interface {
	VerifySession(token string) (userID string, err error)
}

// SessionAuthMiddleware requires a valid bearer session token and injects the
// user id into the request context.
func SessionAuthMiddleware(v SessionVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			userID, err := v.VerifySession(raw)
			if err != nil {
				log.Warn("session verification failed", "err", err)
				writeBearerError(w, "session invalid or expired")
				return
			}

			ctx = context.WithValue(ctx, CtxKeyUserID, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, http.StatusUnauthorized, desc)
}
