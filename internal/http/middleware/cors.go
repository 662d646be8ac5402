package middleware

import (
	"net/http"
	"strings"
)

// The gateway only speaks GET and POST, and the form posts JSON, so
// Content-Type is the one non-simple header browsers preflight for.
const (
	corsAllowedMethods = "GET, POST, OPTIONS"
	corsAllowedHeaders = "Content-Type"
)

type originSet struct {
	any   bool
	exact map[string]struct{}
}

func newOriginSet(origins []string) originSet {
	set := originSet{exact: map[string]struct{}{}}
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		switch origin {
		case "":
		case "*":
			set.any = true
		default:
			set.exact[origin] = struct{}{}
		}
	}
	return set
}

func (s originSet) contains(origin string) bool {
	if s.any {
		return true
	}
	_, ok := s.exact[origin]
	return ok
}

// CORS lets clinic sites embed the booking form and post submissions
// cross-origin. Origins are matched exactly; "*" in the list echoes any
// Origin back.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	allowed := newOriginSet(allowedOrigins)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin != "" && allowed.contains(origin) {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
				h.Set("Access-Control-Allow-Methods", corsAllowedMethods)
				h.Set("Access-Control-Allow-Headers", corsAllowedHeaders)
				h.Set("Access-Control-Max-Age", "600")
			}

			// Handle preflight requests.
			if r.Method == http.MethodOptions && origin != "" && r.Header.Get("Access-Control-Request-Method") != "" {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
