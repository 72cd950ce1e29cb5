// Package requesttime stamps each request with the time it entered the
// middleware chain, so every later reader agrees on "now".
package requesttime

import (
	"net/http"
	"time"

	"uenvalidator/pkg/requestcontext"
)

// Middleware stores the arrival time in the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
