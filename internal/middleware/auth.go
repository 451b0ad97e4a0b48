package middleware

import (
	"net/http"

	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/session"
)

// RequireAuth gates protected pages behind the session store. The
// check runs on every request, so clearing the session from any view
// flips every protected route to a redirect on its next evaluation.
// Unauthenticated requests are sent to /login without ever invoking
// the protected handler.
func RequireAuth(sessions *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !sessions.IsAuthenticated() {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
