package middleware

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/xavierca1/vault-leads/internal/infra/auth"
)

// AdminGate is the routing-layer guard for everything under /admin and
// /api/admin. API callers get a bare JSON 401 (no WWW-Authenticate, so
// browsers never pop the basic-auth dialog); page requests bounce to the
// login page with a return path. Login/logout/session stay open.
// Handlers still re-check auth themselves; this gate is defense in depth.
func AdminGate(verifier auth.SessionVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path

			isAdminPage := strings.HasPrefix(path, "/admin")
			isAdminAPI := strings.HasPrefix(path, "/api/admin")

			if !isAdminPage && !isAdminAPI {
				next.ServeHTTP(w, r)
				return
			}

			if isOpenAdminPath(path) {
				next.ServeHTTP(w, r)
				return
			}

			if auth.IsAuthed(r, verifier) {
				next.ServeHTTP(w, r)
				return
			}

			if isAdminAPI {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "Unauthorized"})
				return
			}

			target := "/admin/login?next=" + url.QueryEscape(path+querySuffix(r))
			http.Redirect(w, r, target, http.StatusFound)
		})
	}
}

func isOpenAdminPath(path string) bool {
	switch {
	case path == "/admin/login",
		strings.HasPrefix(path, "/api/admin/login"),
		strings.HasPrefix(path, "/api/admin/logout"),
		strings.HasPrefix(path, "/api/admin/session"):
		return true
	}
	return false
}

func querySuffix(r *http.Request) string {
	if r.URL.RawQuery == "" {
		return ""
	}
	return "?" + r.URL.RawQuery
}
