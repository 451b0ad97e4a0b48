package api

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/model"
	"github.com/MashaWaleed/Marketplace-React-Frontend/pkg/apierror"
	"github.com/MashaWaleed/Marketplace-React-Frontend/pkg/uid"
)

// MockToken is the fixed token issued by the mock backend.
const MockToken = "mock-token-for-development"

// Mock is an in-memory Backend for offline development and tests.
// It mirrors the real API's observable behavior: purchases settle
// immediately, add-funds stays pending until an external confirmation
// that never arrives here.
type Mock struct {
	mu           sync.Mutex
	catalog      []model.Product
	sellingIDs   map[string]bool
	purchased    []model.Product
	sold         []model.Product
	wallet       model.Wallet
	transactions []model.Transaction
}

var _ Backend = (*Mock)(nil)

// NewMock creates a mock backend seeded with demo data.
func NewMock() *Mock {
	catalog := []model.Product{
		{
			ID:          "1",
			Name:        "Smartphone",
			Price:       699.99,
			PictureURL:  "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=800&h=600&fit=crop",
			Description: "Latest smartphone with advanced features and high-performance camera.",
		},
		{
			ID:          "2",
			Name:        "Laptop",
			Price:       1299.99,
			PictureURL:  "https://images.unsplash.com/photo-1496181133206-80ce9b88a853?w=800&h=600&fit=crop",
			Description: "Powerful laptop for work and entertainment with long battery life.",
		},
		{
			ID:          "3",
			Name:        "Headphones",
			Price:       199.99,
			PictureURL:  "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=800&h=600&fit=crop",
			Description: "Wireless noise-cancelling headphones with premium sound quality.",
		},
		{
			ID:          "4",
			Name:        "Smartwatch",
			Price:       299.99,
			PictureURL:  "https://images.unsplash.com/photo-1546868871-7041f2a55e12?w=800&h=600&fit=crop",
			Description: "Feature-rich smartwatch with health tracking and notifications.",
		},
	}

	return &Mock{
		catalog:    catalog,
		sellingIDs: map[string]bool{"3": true, "4": true},
		purchased:  []model.Product{catalog[0], catalog[1]},
		wallet:     model.Wallet{Balance: 1000.00},
		transactions: []model.Transaction{
			{ID: "1", Amount: 500.00, Date: "2023-04-01T10:00:00Z", Credit: 500.00, Debit: 0, Done: true},
			{ID: "2", Amount: 200.00, Date: "2023-04-05T15:30:00Z", Credit: 0, Debit: 200.00, Done: true},
		},
	}
}

// Login accepts any credentials and issues the fixed mock token.
func (m *Mock) Login(_ context.Context, creds model.Credentials) (model.AuthResponse, error) {
	return model.AuthResponse{
		Token: MockToken,
		User:  model.User{Name: "Test User", Email: creds.Email},
	}, nil
}

// Signup accepts any registration and issues the fixed mock token.
func (m *Mock) Signup(_ context.Context, req model.SignupRequest) (model.AuthResponse, error) {
	return model.AuthResponse{
		Token: MockToken,
		User:  model.User{Name: req.Name, Email: req.Email},
	}, nil
}

// CreateExternalToken returns a canned payment-provider token.
func (m *Mock) CreateExternalToken(_ context.Context) (string, error) {
	return "mock-external-token", nil
}

// SearchProducts filters the catalog by name or description.
func (m *Mock) SearchProducts(_ context.Context, query string) ([]model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if query == "" {
		return append([]model.Product(nil), m.catalog...), nil
	}

	q := strings.ToLower(query)
	var out []model.Product
	for _, p := range m.catalog {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
		}
	}
	return out, nil
}

// GetProduct returns the product with the given id.
func (m *Mock) GetProduct(_ context.Context, id string) (model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.catalog {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Product{}, apierror.NotFound("Product not found")
}

// CreateProduct adds a product to the catalog and the selling list.
func (m *Mock) CreateProduct(_ context.Context, p model.Product) (model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p.ID = uid.New()
	m.catalog = append(m.catalog, p)
	m.sellingIDs[p.ID] = true
	return p, nil
}

// UpdateProduct replaces an owned product's fields.
func (m *Mock) UpdateProduct(_ context.Context, id string, p model.Product) (model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.sellingIDs[id] {
		return model.Product{}, apierror.NotFound("Product not found")
	}
	for i := range m.catalog {
		if m.catalog[i].ID == id {
			p.ID = id
			m.catalog[i] = p
			return p, nil
		}
	}
	return model.Product{}, apierror.NotFound("Product not found")
}

// DeleteProduct removes an owned product from the catalog.
func (m *Mock) DeleteProduct(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.sellingIDs[id] {
		return apierror.NotFound("Product not found")
	}
	delete(m.sellingIDs, id)
	for i := range m.catalog {
		if m.catalog[i].ID == id {
			m.catalog = append(m.catalog[:i], m.catalog[i+1:]...)
			break
		}
	}
	return nil
}

// BuyProduct settles a purchase against the mock wallet.
func (m *Mock) BuyProduct(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.catalog {
		if p.ID != id {
			continue
		}
		if m.wallet.Balance < p.Price {
			return apierror.Transport("Insufficient balance", nil)
		}
		m.wallet.Balance -= p.Price
		m.purchased = append(m.purchased, p)
		m.transactions = append(m.transactions, model.Transaction{
			ID:     uid.New(),
			Amount: p.Price,
			Date:   time.Now().UTC().Format(time.RFC3339),
			Debit:  p.Price,
			Done:   true,
		})
		return nil
	}
	return apierror.NotFound("Product not found")
}

// PurchasedProducts lists products bought so far.
func (m *Mock) PurchasedProducts(_ context.Context) ([]model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Product(nil), m.purchased...), nil
}

// SellingProducts lists catalog entries still on sale by the user.
func (m *Mock) SellingProducts(_ context.Context) ([]model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []model.Product
	for _, p := range m.catalog {
		if m.sellingIDs[p.ID] {
			out = append(out, p)
		}
	}
	return out, nil
}

// SoldProducts lists products already sold.
func (m *Mock) SoldProducts(_ context.Context) ([]model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Product(nil), m.sold...), nil
}

// Analytics derives the counters from the current lists.
func (m *Mock) Analytics(_ context.Context) (model.Analytics, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return model.Analytics{
		TotalProducts:          len(m.catalog),
		TotalSellingProducts:   len(m.sellingIDs),
		TotalSoldProducts:      len(m.sold),
		TotalPurchasedProducts: len(m.purchased),
	}, nil
}

// Wallet returns the current balance.
func (m *Mock) Wallet(_ context.Context) (model.Wallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.wallet, nil
}

// AddFunds records a pending credit and returns a fake payment URL.
// The balance stays unchanged: the real flow only credits the wallet
// after the external provider confirms.
func (m *Mock) AddFunds(_ context.Context, amount float64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if amount <= 0 {
		return "", apierror.Transport("Amount must be positive", nil)
	}

	id := uid.New()
	m.transactions = append(m.transactions, model.Transaction{
		ID:     id,
		Amount: amount,
		Date:   time.Now().UTC().Format(time.RFC3339),
		Credit: amount,
		Done:   false,
	})
	return "https://pay.example.com/checkout/" + id, nil
}

// Transactions lists the ledger, newest last.
func (m *Mock) Transactions(_ context.Context) ([]model.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Transaction(nil), m.transactions...), nil
}
