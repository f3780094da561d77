package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/ideaboard/internal/auth"
	"github.com/dmitrijs2005/ideaboard/internal/common"
)

type ctxKey string

const sessionEmailKey ctxKey = "sessionEmail"

// Session verifies an optional bearer token. Requests without one pass
// through anonymously; a present but invalid token is rejected with 401.
func Session(secret []byte, unauthorized http.HandlerFunc) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(common.AuthorizationHeaderName)
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(header, common.BearerPrefix)
			if !ok || token == "" {
				unauthorized(w, r)
				return
			}

			email, err := auth.EmailFromToken(token, secret)
			if err != nil {
				unauthorized(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), sessionEmailKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionEmail returns the verified session email, or "".
func SessionEmail(ctx context.Context) string {
	email, _ := ctx.Value(sessionEmailKey).(string)
	return email
}

// RequireSession rejects anonymous requests.
func RequireSession(unauthorized http.HandlerFunc) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if SessionEmail(r.Context()) == "" {
				unauthorized(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
