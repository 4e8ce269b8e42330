package middleware

import (
	"net/http"
	"strings"
)

const methodParam = "_method"

var overridable = map[string]bool{
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// MethodOverride lets HTML forms reach PUT, PATCH and DELETE routes by
// posting with a _method field, read from the query string first and then
// from a urlencoded body. It wraps the engine because gin matches routes
// before any middleware runs.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			m := r.URL.Query().Get(methodParam)
			if m == "" && strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
				if err := r.ParseForm(); err == nil {
					m = r.PostForm.Get(methodParam)
				}
			}
			if m = strings.ToUpper(strings.TrimSpace(m)); overridable[m] {
				r.Method = m
			}
		}
		next.ServeHTTP(w, r)
	})
}
