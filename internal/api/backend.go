package api

import (
	"context"

	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/model"
)

// Backend is the remote marketplace API surface the app consumes.
// The real implementation (Client) makes exactly one HTTP round trip
// per call; Mock serves canned data for offline development.
type Backend interface {
	// Accounts
	Login(ctx context.Context, creds model.Credentials) (model.AuthResponse, error)
	Signup(ctx context.Context, req model.SignupRequest) (model.AuthResponse, error)
	CreateExternalToken(ctx context.Context) (string, error)

	// Products
	SearchProducts(ctx context.Context, query string) ([]model.Product, error)
	GetProduct(ctx context.Context, id string) (model.Product, error)
	CreateProduct(ctx context.Context, p model.Product) (model.Product, error)
	UpdateProduct(ctx context.Context, id string, p model.Product) (model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	BuyProduct(ctx context.Context, id string) error
	PurchasedProducts(ctx context.Context) ([]model.Product, error)
	SellingProducts(ctx context.Context) ([]model.Product, error)
	SoldProducts(ctx context.Context) ([]model.Product, error)
	Analytics(ctx context.Context) (model.Analytics, error)

	// Wallet
	Wallet(ctx context.Context) (model.Wallet, error)
	AddFunds(ctx context.Context, amount float64) (string, error)
	Transactions(ctx context.Context) ([]model.Transaction, error)
}
