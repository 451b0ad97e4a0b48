package handler

import (
	"log"
	"net/http"

	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/api"
	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/cache"
	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/model"
	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/session"
	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/validate"
	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/view"
	"github.com/MashaWaleed/Marketplace-React-Frontend/pkg/apierror"
)

// AuthHandler serves login, signup, and logout.
type AuthHandler struct {
	backend  api.Backend
	sessions *session.Store
	cache    *cache.Store
	views    *view.View
}

func NewAuthHandler(backend api.Backend, sessions *session.Store, store *cache.Store, views *view.View) *AuthHandler {
	return &AuthHandler{backend: backend, sessions: sessions, cache: store, views: views}
}

type loginForm struct {
	Email  string
	Errors validate.Errors
	Alert  string
}

type signupForm struct {
	Name   string
	Email  string
	Errors validate.Errors
	Alert  string
}

// LoginForm renders the login page. Already-authenticated visitors are
// sent straight to the product list.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if h.sessions.IsAuthenticated() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.views.Render(w, http.StatusOK, "login", pageData(w, r, h.sessions, "Login", "", loginForm{Errors: validate.Errors{}}))
}

// Login validates the form, exchanges the credentials for a token, and
// opens the session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	form := loginForm{Email: r.PostFormValue("email"), Errors: validate.Errors{}}
	password := r.PostFormValue("password")

	form.Errors.Check("email", validate.Email(form.Email))
	form.Errors.Check("password", validate.Required(password, "Password"))
	if !form.Errors.Valid() {
		h.views.Render(w, http.StatusUnprocessableEntity, "login", pageData(w, r, h.sessions, "Login", "", form))
		return
	}

	resp, err := h.backend.Login(r.Context(), model.Credentials{Email: form.Email, Password: password})
	if err != nil {
		form.Alert = apierror.Extract(err)
		h.views.Render(w, http.StatusOK, "login", pageData(w, r, h.sessions, "Login", "", form))
		return
	}

	if err := h.sessions.Set(resp.User, resp.Token); err != nil {
		log.Printf("[Auth] Failed to persist session: %v", err)
	}
	view.SetFlash(w, "success", "Login successful", "")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// SignupForm renders the registration page.
func (h *AuthHandler) SignupForm(w http.ResponseWriter, r *http.Request) {
	if h.sessions.IsAuthenticated() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.views.Render(w, http.StatusOK, "signup", pageData(w, r, h.sessions, "Sign up", "", signupForm{Errors: validate.Errors{}}))
}

// Signup validates the form, registers the account, and opens the
// session with the returned token.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	form := signupForm{
		Name:   r.PostFormValue("name"),
		Email:  r.PostFormValue("email"),
		Errors: validate.Errors{},
	}
	password := r.PostFormValue("password")

	form.Errors.Check("name", validate.Required(form.Name, "Name"))
	form.Errors.Check("email", validate.Email(form.Email))
	form.Errors.Check("password", validate.MinLen(password, "Password", 8))
	if !form.Errors.Valid() {
		h.views.Render(w, http.StatusUnprocessableEntity, "signup", pageData(w, r, h.sessions, "Sign up", "", form))
		return
	}

	resp, err := h.backend.Signup(r.Context(), model.SignupRequest{Name: form.Name, Email: form.Email, Password: password})
	if err != nil {
		form.Alert = apierror.Extract(err)
		h.views.Render(w, http.StatusOK, "signup", pageData(w, r, h.sessions, "Sign up", "", form))
		return
	}

	if err := h.sessions.Set(resp.User, resp.Token); err != nil {
		log.Printf("[Auth] Failed to persist session: %v", err)
	}
	view.SetFlash(w, "success", "Account created successfully", "")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout closes the session and drops every cached response so the
// next login starts cold.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Clear(); err != nil {
		log.Printf("[Auth] Failed to clear session: %v", err)
	}
	h.cache.Clear()
	view.SetFlash(w, "success", "Logged out", "")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
