package web

import (
	"context"
	"net/http"
	"strings"

	"github.com/louisbranch/taskdeck/internal/auth"
	"github.com/louisbranch/taskdeck/internal/platform/requestctx"
	"github.com/louisbranch/taskdeck/internal/platform/timeouts"
	"github.com/louisbranch/taskdeck/internal/web/httpx"
	"github.com/louisbranch/taskdeck/internal/web/sessioncookie"
)

// RequireSession resolves the session cookie to a user id and stores it in
// the request context. Requests without a valid session are sent to the
// login page, or get a JSON 401 on API paths.
func RequireSession(introspector auth.Introspector, loginURL string) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := sessioncookie.Read(r)
			if !ok {
				unauthorized(w, r, loginURL)
				return
			}
			ctx, cancel := context.WithTimeout(r.Context(), timeouts.Introspection)
			identity, err := introspector.IntrospectSession(ctx, token)
			cancel()
			if err != nil || identity.UserID == "" {
				sessioncookie.Clear(w, r)
				unauthorized(w, r, loginURL)
				return
			}
			next.ServeHTTP(w, r.WithContext(requestctx.WithUserID(r.Context(), identity.UserID)))
		})
	}
}

func unauthorized(w http.ResponseWriter, r *http.Request, loginURL string) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		_ = httpx.WriteJSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	http.Redirect(w, r, loginURL, http.StatusSeeOther)
}
