package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/studyhub/auth-service/internal/logger"
	"github.com/studyhub/auth-service/internal/session"
	"github.com/studyhub/auth-service/internal/users"
)

// unexported, collision-proof context key
type userContextKeyType struct{}

var userKey = userContextKeyType{}

// UserFromContext extracts the session user from context.
func UserFromContext(ctx context.Context) (*users.User, bool) {
	u, ok := ctx.Value(userKey).(*users.User)
	return u, ok && u != nil
}

// WithUser returns a copy of ctx carrying u.
func WithUser(ctx context.Context, u *users.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

type AuthMiddleware struct {
	sessions *session.Manager
	cookies  session.CookieOptions
}

func NewAuthMiddleware(sessions *session.Manager, cookies session.CookieOptions) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions, cookies: cookies}
}

func (a *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := session.TokenFromRequest(r, a.cookies)
		if token == "" {
			writeMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		u, err := a.sessions.Resolve(r.Context(), token)
		if err != nil {
			logger.Error("session resolve failed", map[string]any{"error": err.Error()})
			writeMessage(w, http.StatusInternalServerError, "Server error")
			return
		}
		if u == nil {
			// expired or unknown; drop the stale cookie
			session.ClearCookie(w, a.cookies)
			writeMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
	})
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
