package handler

import (
	"log"
	"net/http"

	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/cache"
	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/session"
	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/view"
	"github.com/MashaWaleed/Marketplace-React-Frontend/pkg/apierror"
)

// pageData assembles the shared template envelope for a page render.
func pageData(w http.ResponseWriter, r *http.Request, sessions *session.Store, title, watchKeys string, content interface{}) view.Data {
	user, authenticated := sessions.User()
	return view.Data{
		Title:         title,
		Authenticated: authenticated,
		UserName:      user.Name,
		Flash:         view.TakeFlash(w, r),
		WatchKeys:     watchKeys,
		Content:       content,
	}
}

// handleAuthError clears local state and bounces to the login page when
// the backend rejected our token. Reports whether it wrote the response.
func handleAuthError(w http.ResponseWriter, r *http.Request, sessions *session.Store, store *cache.Store, err error) bool {
	if !apierror.IsAuth(err) {
		return false
	}
	if clearErr := sessions.Clear(); clearErr != nil {
		log.Printf("[Auth] Failed to clear session: %v", clearErr)
	}
	store.Clear()
	view.SetFlash(w, "error", "Session expired", "Please log in again")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
	return true
}
