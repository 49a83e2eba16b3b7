package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"skillsaudit/internal/platform/requestctx"
)

// RequestID tags every request with an id, honoring one supplied by a
// proxy in front of the service.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(requestctx.WithRequestID(r.Context(), requestID)))
	})
}
