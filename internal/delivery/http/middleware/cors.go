package middleware

import (
	"net/http"
	"strings"
)

const corsPreflightMaxAge = "86400"

// originSet is a normalized allowlist of origins. Entries are compared
// exactly, after trimming whitespace and a trailing slash.
type originSet map[string]bool

func newOriginSet(origins []string) originSet {
	set := make(originSet, len(origins))
	for _, origin := range origins {
		origin = strings.TrimSuffix(strings.TrimSpace(origin), "/")
		if origin != "" {
			set[origin] = true
		}
	}
	return set
}

// CORS gates cross-origin requests against the configured allowlist.
// Preflight OPTIONS requests are answered directly with 204; other
// requests from an allowed origin get the response headers attached
// when the handler writes its status.
func CORS(allowedOrigins []string, next http.Handler) http.Handler {
	allowed := newOriginSet(allowedOrigins)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		if r.Method == http.MethodOptions {
			if allowed[origin] {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", "GET, POST, PATCH, PUT, DELETE, OPTIONS")
				h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Accept")
				h.Set("Access-Control-Allow-Credentials", "true")
				h.Set("Access-Control-Max-Age", corsPreflightMaxAge)
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}

		if !allowed[origin] {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(&allowedOriginWriter{ResponseWriter: w, origin: origin}, r)
	})
}

// allowedOriginWriter stamps the allow headers right before the status
// line goes out, so handlers that set headers late still get them.
type allowedOriginWriter struct {
	http.ResponseWriter
	origin string
}

func (w *allowedOriginWriter) WriteHeader(code int) {
	w.Header().Set("Access-Control-Allow-Origin", w.origin)
	w.Header().Set("Access-Control-Allow-Credentials", "true")
	w.ResponseWriter.WriteHeader(code)
}
