package handler

import (
	"context"
	"net/http"

	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/api"
	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/cache"
	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/model"
	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/session"
	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/view"
	"github.com/MashaWaleed/Marketplace-React-Frontend/pkg/apierror"
)

// ProfileHandler serves the account page: selling and purchased
// products plus the overview counters.
type ProfileHandler struct {
	backend  api.Backend
	sessions *session.Store
	cache    *cache.Store
	views    *view.View
}

func NewProfileHandler(backend api.Backend, sessions *session.Store, store *cache.Store, views *view.View) *ProfileHandler {
	return &ProfileHandler{backend: backend, sessions: sessions, cache: store, views: views}
}

type profilePage struct {
	Selling   []model.Product
	Purchased []model.Product
	Analytics model.Analytics
	Error     string
}

func (h *ProfileHandler) Show(w http.ResponseWriter, r *http.Request) {
	content := profilePage{}

	var err error
	content.Selling, err = cache.Fetch(r.Context(), h.cache, keySellingProducts, func(ctx context.Context) ([]model.Product, error) {
		return h.backend.SellingProducts(ctx)
	})
	if err == nil {
		content.Purchased, err = cache.Fetch(r.Context(), h.cache, keyPurchasedProducts, func(ctx context.Context) ([]model.Product, error) {
			return h.backend.PurchasedProducts(ctx)
		})
	}
	if err == nil {
		content.Analytics, err = cache.Fetch(r.Context(), h.cache, keyAnalytics, func(ctx context.Context) (model.Analytics, error) {
			return h.backend.Analytics(ctx)
		})
	}
	if err != nil {
		if handleAuthError(w, r, h.sessions, h.cache, err) {
			return
		}
		content.Error = apierror.Extract(err)
	}

	h.views.Render(w, http.StatusOK, "profile", pageData(w, r, h.sessions, "Profile",
		"selling-products,purchased-products,analytics", content))
}
