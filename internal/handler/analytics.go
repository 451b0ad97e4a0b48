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

// AnalyticsHandler serves the sales dashboard: aggregate counters, the
// sold-product list, and the transaction history.
type AnalyticsHandler struct {
	backend  api.Backend
	sessions *session.Store
	cache    *cache.Store
	views    *view.View
}

func NewAnalyticsHandler(backend api.Backend, sessions *session.Store, store *cache.Store, views *view.View) *AnalyticsHandler {
	return &AnalyticsHandler{backend: backend, sessions: sessions, cache: store, views: views}
}

type analyticsPage struct {
	Analytics    model.Analytics
	Sold         []model.Product
	Transactions []model.Transaction
	Error        string
}

func (h *AnalyticsHandler) Show(w http.ResponseWriter, r *http.Request) {
	content := analyticsPage{}

	var err error
	content.Analytics, err = cache.Fetch(r.Context(), h.cache, keyAnalytics, func(ctx context.Context) (model.Analytics, error) {
		return h.backend.Analytics(ctx)
	})
	if err == nil {
		content.Sold, err = cache.Fetch(r.Context(), h.cache, keySoldProducts, func(ctx context.Context) ([]model.Product, error) {
			return h.backend.SoldProducts(ctx)
		})
	}
	if err == nil {
		content.Transactions, err = cache.Fetch(r.Context(), h.cache, keyTransactions, func(ctx context.Context) ([]model.Transaction, error) {
			return h.backend.Transactions(ctx)
		})
	}
	if err != nil {
		if handleAuthError(w, r, h.sessions, h.cache, err) {
			return
		}
		content.Error = apierror.Extract(err)
	}

	h.views.Render(w, http.StatusOK, "analytics", pageData(w, r, h.sessions, "Analytics",
		"analytics,sold-products,transactions", content))
}
