package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

type contextKey string

const userIDKey contextKey = "user_id"

// UserAuth extracts the caller's identity from the Authorization header.
// Tokens are treated as opaque user identifiers; verifying them against an
// identity provider is out of scope here.
type UserAuth struct {
	logger *slog.Logger
}

// NewUserAuth creates the user identity middleware
func NewUserAuth(logger *slog.Logger) *UserAuth {
	return &UserAuth{logger: logger}
}

// Middleware rejects requests without a bearer identity and stores the
// user ID in the request context for handlers.
func (a *UserAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			a.logger.Warn("Request rejected - no authorization header",
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)
			http.Error(w, "Unauthorized - missing Authorization header", http.StatusUnauthorized)
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		token = strings.TrimSpace(token)
		if token == "" || token == authHeader {
			a.logger.Warn("Request rejected - malformed authorization header",
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)
			http.Error(w, "Unauthorized - expected Bearer token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID returns the authenticated user ID stored by the middleware,
// or empty string if the request never passed through it.
func UserID(ctx context.Context) string {
	userID, _ := ctx.Value(userIDKey).(string)
	return userID
}
