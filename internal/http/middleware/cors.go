package middleware

import (
	"net/http"
	"strings"
)

// CORS provides an allowlist-based CORS middleware.
//
// Entries may be exact origins ("https://example.it") or suffix wildcards
// ("*.example.it", matching any origin whose host ends with the suffix).
// Requests without an Origin header are always allowed so server-to-server
// calls and tooling keep working. An empty allowlist disables enforcement
// entirely. A disallowed origin is rejected with a plain-text 403 before any
// handler runs; it never receives the JSON error envelope.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	enforce := false
	exact := map[string]struct{}{}
	var suffixes []string
	for _, origin := range allowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		enforce = true
		if rest, ok := strings.CutPrefix(origin, "*."); ok {
			// keep the dot so "*.example.it" does not match "evilexample.it"
			suffixes = append(suffixes, "."+rest)
			continue
		}
		exact[origin] = struct{}{}
	}

	allowedHeaders := "Content-Type"
	allowedMethods := "GET, POST, OPTIONS"

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if enforce && !originAllowed(exact, suffixes, origin) {
				http.Error(w, "origin not allowed", http.StatusForbidden)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)
			w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
			w.Header().Set("Access-Control-Max-Age", "600")

			// Handle preflight requests.
			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(exact map[string]struct{}, suffixes []string, origin string) bool {
	if _, ok := exact[origin]; ok {
		return true
	}
	host := origin
	if i := strings.Index(host, "://"); i >= 0 {
		host = host[i+3:]
	}
	if i := strings.LastIndex(host, ":"); i >= 0 {
		host = host[:i]
	}
	for _, suffix := range suffixes {
		if strings.HasSuffix(host, suffix) {
			return true
		}
	}
	return false
}
