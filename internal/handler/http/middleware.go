package http

import (
	"context"
	"net/http"

	"github.com/Tazdar-Rahim/artmuse-server/pkg/httputil"
)

// SessionHeader carries the anonymous cart session identifier. The client
// generates it once and sends it on every cart and checkout request.
const SessionHeader = "X-Session-ID"

type sessionKeyType struct{}

// RequireSession rejects requests without a session header and puts the
// session ID on the request context.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.Header.Get(SessionHeader)
		if sessionID == "" {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{
					Code:    "MISSING_SESSION",
					Message: "the " + SessionHeader + " header is required",
				},
			})
			return
		}

		ctx := context.WithValue(r.Context(), sessionKeyType{}, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionFromContext extracts the session ID set by RequireSession.
func SessionFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(sessionKeyType{}).(string); ok {
		return id
	}
	return ""
}
