package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/fintrackhq/backend/internal/token"
)

type Middleware struct {
	Tokens *token.Manager
}

func NewMiddleware(tokens *token.Manager) *Middleware {
	return &Middleware{Tokens: tokens}
}

// context key
type contextKey string

const UIDKey contextKey = "uid"

// BearerAuth verifies the Authorization header and puts the caller's uid in
// the request context. Everything behind it can rely on a non-empty uid.
func (m *Middleware) BearerAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		header := r.Header.Get("Authorization")
		if header == "" {
			http.Error(w, "missing Authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			http.Error(w, "invalid Authorization header", http.StatusUnauthorized)
			return
		}

		uid, err := m.Tokens.Verify(parts[1])
		if err != nil {
			http.Error(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UIDKey, uid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Helper to extract UID
func UID(ctx context.Context) string {
	uid, _ := ctx.Value(UIDKey).(string)
	return uid
}
