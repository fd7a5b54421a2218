package middleware

import (
	"net/http"
	"strconv"
)

// CacheControl marks GET responses as publicly cacheable for maxAge seconds.
// Catalog reads are the same for every visitor, so browsers and any CDN in
// front may reuse them. Non-GET requests pass through untouched.
func CacheControl(maxAge int) func(http.Handler) http.Handler {
	value := "public, max-age=" + strconv.Itoa(maxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet {
				w.Header().Set("Cache-Control", value)
			}
			next.ServeHTTP(w, r)
		})
	}
}
