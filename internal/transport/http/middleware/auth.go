package middleware

import (
	"context"
	"net/http"
	"strings"

	"skillsaudit/internal/domain/auth"
)

// SessionCookie carries the signed session token for browser clients.
const SessionCookie = "session"

type ctxKey string

const ctxKeyUser ctxKey = "user"

// Auth resolves the session from the cookie, or from a bearer header
// for non-browser clients. Requests without a valid token pass through
// anonymous; RequireRole decides whether that matters.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyUser, *claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
		return parts[1]
	}
	return ""
}

func GetUser(ctx context.Context) (auth.Claims, bool) {
	claims, ok := ctx.Value(ctxKeyUser).(auth.Claims)
	return claims, ok
}
