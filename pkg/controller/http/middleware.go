package http

import (
	"context"
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

// SessionHeader carries the client session that scopes search sequencing
// and the result kept for export
const SessionHeader = "X-Inquiry-Session"

// UserHeader names the user recorded on report requests
const UserHeader = "X-Inquiry-User"

type ctxSessionKey struct{}

var sessionPattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,128}$`)

// sessionMiddleware attaches the request session to the context. Requests
// without a usable session get a fresh one, echoed in the response header.
func sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := r.Header.Get(SessionHeader)
		if !sessionPattern.MatchString(session) {
			session = uuid.NewString()
		}
		w.Header().Set(SessionHeader, session)

		ctx := context.WithValue(r.Context(), ctxSessionKey{}, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionFrom returns the session set by sessionMiddleware
func sessionFrom(ctx context.Context) string {
	if s, ok := ctx.Value(ctxSessionKey{}).(string); ok {
		return s
	}
	return ""
}
