package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/api"
	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/cache"
	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/config"
	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/handler"
	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/middleware"
	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/router"
	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/session"
	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/view"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting marketplace web...")

	// Load configuration
	cfg := config.MustLoad()
	log.Printf("Environment: %s", cfg.App.Environment)

	// Open durable session storage
	sessionDB, err := session.Open(cfg.Session.Path)
	if err != nil {
		log.Fatalf("Failed to open session storage: %v", err)
	}
	defer sessionDB.Close()

	sessions, err := session.New(sessionDB)
	if err != nil {
		log.Fatalf("Failed to load session: %v", err)
	}

	// Pick the backend based on config
	var backend api.Backend
	if cfg.Backend.UseMock() {
		backend = api.NewMock()
		log.Println("Mock backend initialized")
	} else {
		backend = api.NewClient(api.Config{
			BaseURL: cfg.Backend.BaseURL,
			Timeout: cfg.Backend.Timeout,
			Token:   sessions.Token,
		})
		log.Printf("API backend initialized: %s", cfg.Backend.BaseURL)
	}

	// Cache and views
	store := cache.New()
	defer store.Close()
	views := view.MustNew()

	// Create router
	r := router.New(router.Config{
		Auth:        handler.NewAuthHandler(backend, sessions, store, views),
		Products:    handler.NewProductHandler(backend, sessions, store, views),
		Wallet:      handler.NewWalletHandler(backend, sessions, store, views),
		Profile:     handler.NewProfileHandler(backend, sessions, store, views),
		Analytics:   handler.NewAnalyticsHandler(backend, sessions, store, views),
		Status:      handler.NewStatusHandler(cfg),
		Events:      handler.NewEventsHandler(store),
		RequireAuth: middleware.RequireAuth(sessions),
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on http://%s", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
