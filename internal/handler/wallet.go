package handler

import (
	"context"
	"net/http"

	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/api"
	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/cache"
	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/model"
	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/session"
	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/validate"
	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/view"
	"github.com/MashaWaleed/Marketplace-React-Frontend/pkg/apierror"
)

// WalletHandler serves the balance page, the transaction history, and
// the add-funds flow.
type WalletHandler struct {
	backend  api.Backend
	sessions *session.Store
	cache    *cache.Store
	views    *view.View
}

func NewWalletHandler(backend api.Backend, sessions *session.Store, store *cache.Store, views *view.View) *WalletHandler {
	return &WalletHandler{backend: backend, sessions: sessions, cache: store, views: views}
}

type walletPage struct {
	Wallet       model.Wallet
	Transactions []model.Transaction
	Amount       string
	AmountError  string
	Error        string
}

// Show renders the wallet page.
func (h *WalletHandler) Show(w http.ResponseWriter, r *http.Request) {
	h.renderWallet(w, r, http.StatusOK, "", "")
}

// AddFunds validates the amount and requests a top-up. Invalid amounts
// never reach the network. On success the user is handed off to the
// external payment page; the balance updates once the provider
// confirms, via the invalidated wallet key.
func (h *WalletHandler) AddFunds(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	raw := r.PostFormValue("amount")
	amount, msg := validate.Amount(raw)
	if msg != "" {
		h.renderWallet(w, r, http.StatusUnprocessableEntity, raw, msg)
		return
	}

	var paymentURL string
	err := h.cache.Mutate(r.Context(), func(ctx context.Context) error {
		url, err := h.backend.AddFunds(ctx, amount)
		paymentURL = url
		return err
	}, keyWallet, keyTransactions)
	if err != nil {
		if handleAuthError(w, r, h.sessions, h.cache, err) {
			return
		}
		view.SetFlash(w, "error", "Add funds failed", apierror.Extract(err))
		http.Redirect(w, r, "/wallet", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, paymentURL, http.StatusSeeOther)
}

func (h *WalletHandler) renderWallet(w http.ResponseWriter, r *http.Request, status int, amount, amountError string) {
	content := walletPage{Amount: amount, AmountError: amountError}

	wallet, err := cache.Fetch(r.Context(), h.cache, keyWallet, func(ctx context.Context) (model.Wallet, error) {
		return h.backend.Wallet(ctx)
	})
	if err == nil {
		content.Wallet = wallet
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

	h.views.Render(w, status, "wallet", pageData(w, r, h.sessions, "Wallet", "wallet,transactions", content))
}
