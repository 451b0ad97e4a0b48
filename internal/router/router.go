// Package router wires the HTTP routes to their handlers.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/handler"
	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/middleware"
)

// Config holds the handlers and middleware the router needs.
type Config struct {
	Auth      *handler.AuthHandler
	Products  *handler.ProductHandler
	Wallet    *handler.WalletHandler
	Profile   *handler.ProfileHandler
	Analytics *handler.AnalyticsHandler
	Status    *handler.StatusHandler
	Events    *handler.EventsHandler

	RequireAuth func(http.Handler) http.Handler
}

// New creates the application router with all routes and middleware.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Public routes
	r.Get("/api/status", cfg.Status.Status)
	r.Get("/login", cfg.Auth.LoginForm)
	r.Post("/login", cfg.Auth.Login)
	r.Get("/signup", cfg.Auth.SignupForm)
	r.Post("/signup", cfg.Auth.Signup)

	// Everything else requires a session
	r.Group(func(r chi.Router) {
		r.Use(cfg.RequireAuth)

		r.Get("/", cfg.Products.Home)
		r.Get("/products/{id}", cfg.Products.Details)
		r.Post("/products/{id}/buy", cfg.Products.Buy)
		r.Get("/products/{id}/edit", cfg.Products.EditForm)
		r.Post("/products/{id}/edit", cfg.Products.Update)
		r.Post("/products/{id}/delete", cfg.Products.Delete)
		r.Get("/add-product", cfg.Products.AddForm)
		r.Post("/add-product", cfg.Products.Add)

		r.Get("/wallet", cfg.Wallet.Show)
		r.Post("/wallet/add", cfg.Wallet.AddFunds)

		r.Get("/profile", cfg.Profile.Show)
		r.Get("/analytics", cfg.Analytics.Show)

		r.Get("/events", cfg.Events.Stream)
		r.Post("/logout", cfg.Auth.Logout)
	})

	return r
}
