package api

import (
	"context"
	"testing"

	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/model"
	"github.com/MashaWaleed/Marketplace-React-Frontend/pkg/apierror"
)

func TestMock_SearchMatchesNameAndDescription(t *testing.T) {
	m := NewMock()
	ctx := context.Background()

	all, err := m.SearchProducts(ctx, "")
	if err != nil {
		t.Fatalf("SearchProducts() error = %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("len(all) = %d, want 4", len(all))
	}

	byName, _ := m.SearchProducts(ctx, "laptop")
	if len(byName) != 1 || byName[0].Name != "Laptop" {
		t.Errorf("search by name = %+v", byName)
	}

	byDesc, _ := m.SearchProducts(ctx, "noise-cancelling")
	if len(byDesc) != 1 || byDesc[0].Name != "Headphones" {
		t.Errorf("search by description = %+v", byDesc)
	}

	none, _ := m.SearchProducts(ctx, "zeppelin")
	if len(none) != 0 {
		t.Errorf("search with no matches = %+v", none)
	}
}

func TestMock_BuySettlesImmediately(t *testing.T) {
	m := NewMock()
	ctx := context.Background()

	before, _ := m.Wallet(ctx)
	if err := m.BuyProduct(ctx, "3"); err != nil {
		t.Fatalf("BuyProduct() error = %v", err)
	}

	after, _ := m.Wallet(ctx)
	if want := before.Balance - 199.99; after.Balance != want {
		t.Errorf("balance = %v, want %v", after.Balance, want)
	}

	purchased, _ := m.PurchasedProducts(ctx)
	found := false
	for _, p := range purchased {
		if p.ID == "3" {
			found = true
		}
	}
	if !found {
		t.Error("bought product missing from purchased list")
	}

	txs, _ := m.Transactions(ctx)
	last := txs[len(txs)-1]
	if last.Debit != 199.99 || !last.Done {
		t.Errorf("last transaction = %+v, want settled debit of 199.99", last)
	}
}

func TestMock_BuyInsufficientBalance(t *testing.T) {
	m := NewMock()
	ctx := context.Background()

	// Balance is 1000.00; the laptop costs 1299.99.
	err := m.BuyProduct(ctx, "2")
	if err == nil {
		t.Fatal("BuyProduct() error = nil, want insufficient balance")
	}
	if got := apierror.Extract(err); got != "Insufficient balance" {
		t.Errorf("Extract() = %q", got)
	}
}

func TestMock_AddFundsStaysPending(t *testing.T) {
	m := NewMock()
	ctx := context.Background()

	before, _ := m.Wallet(ctx)
	url, err := m.AddFunds(ctx, 50)
	if err != nil {
		t.Fatalf("AddFunds() error = %v", err)
	}
	if url == "" {
		t.Error("AddFunds() returned empty payment URL")
	}

	after, _ := m.Wallet(ctx)
	if after.Balance != before.Balance {
		t.Errorf("balance changed before confirmation: %v -> %v", before.Balance, after.Balance)
	}

	txs, _ := m.Transactions(ctx)
	last := txs[len(txs)-1]
	if last.Credit != 50 || last.Done {
		t.Errorf("last transaction = %+v, want pending credit of 50", last)
	}
}

func TestMock_ProductLifecycle(t *testing.T) {
	m := NewMock()
	ctx := context.Background()

	created, err := m.CreateProduct(ctx, model.Product{
		Name:        "Camera",
		Price:       450,
		PictureURL:  "https://example.com/camera.jpg",
		Description: "Mirrorless camera",
	})
	if err != nil {
		t.Fatalf("CreateProduct() error = %v", err)
	}
	if created.ID == "" {
		t.Fatal("CreateProduct() did not assign an id")
	}

	selling, _ := m.SellingProducts(ctx)
	if len(selling) != 3 {
		t.Errorf("len(selling) = %d, want 3", len(selling))
	}

	created.Price = 400
	if _, err := m.UpdateProduct(ctx, created.ID, created); err != nil {
		t.Fatalf("UpdateProduct() error = %v", err)
	}
	got, _ := m.GetProduct(ctx, created.ID)
	if got.Price != 400 {
		t.Errorf("price after update = %v, want 400", got.Price)
	}

	if err := m.DeleteProduct(ctx, created.ID); err != nil {
		t.Fatalf("DeleteProduct() error = %v", err)
	}
	if _, err := m.GetProduct(ctx, created.ID); !apierror.IsNotFound(err) {
		t.Errorf("GetProduct() after delete = %v, want not found", err)
	}
}

func TestMock_GetProductNotFound(t *testing.T) {
	m := NewMock()
	_, err := m.GetProduct(context.Background(), "999")
	if !apierror.IsNotFound(err) {
		t.Errorf("GetProduct(unknown) = %v, want not found", err)
	}
}

func TestMock_AnalyticsTracksLists(t *testing.T) {
	m := NewMock()
	ctx := context.Background()

	a, err := m.Analytics(ctx)
	if err != nil {
		t.Fatalf("Analytics() error = %v", err)
	}
	if a.TotalProducts != 4 || a.TotalSellingProducts != 2 || a.TotalPurchasedProducts != 2 || a.TotalSoldProducts != 0 {
		t.Errorf("Analytics() = %+v", a)
	}

	if err := m.BuyProduct(ctx, "3"); err != nil {
		t.Fatalf("BuyProduct() error = %v", err)
	}
	a, _ = m.Analytics(ctx)
	if a.TotalPurchasedProducts != 3 {
		t.Errorf("TotalPurchasedProducts after buy = %d, want 3", a.TotalPurchasedProducts)
	}
}
