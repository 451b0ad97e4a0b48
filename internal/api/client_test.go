package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/model"
	"github.com/MashaWaleed/Marketplace-React-Frontend/pkg/apierror"
)

func TestClient_BearerAttached(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"balance": 100}`))
	}))
	defer server.Close()

	client := NewClient(Config{
		BaseURL: server.URL,
		Token:   func() string { return "t1" },
	})

	if _, err := client.Wallet(context.Background()); err != nil {
		t.Fatalf("Wallet() error = %v", err)
	}
	if gotAuth != "Bearer t1" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer t1")
	}
}

func TestClient_BearerOmittedWhenLoggedOut(t *testing.T) {
	var gotAuth string
	var hasAuth bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, hasAuth = r.Header["Authorization"]
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(Config{
		BaseURL: server.URL,
		Token:   func() string { return "" },
	})

	if _, err := client.SearchProducts(context.Background(), ""); err != nil {
		t.Fatalf("SearchProducts() error = %v", err)
	}
	if hasAuth || gotAuth != "" {
		t.Errorf("Authorization header sent while logged out: %q", gotAuth)
	}
}

func TestClient_SearchQueryEncoding(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	if _, err := client.SearchProducts(context.Background(), "smart phone"); err != nil {
		t.Fatalf("SearchProducts() error = %v", err)
	}
	if gotQuery != "smart phone" {
		t.Errorf("q = %q, want %q", gotQuery, "smart phone")
	}
}

func TestClient_ServerMessageExtracted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message": "Insufficient balance"}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	err := client.BuyProduct(context.Background(), "1")
	if err == nil {
		t.Fatal("BuyProduct() error = nil, want error")
	}
	if got := apierror.Extract(err); got != "Insufficient balance" {
		t.Errorf("Extract() = %q, want %q", got, "Insufficient balance")
	}
}

func TestClient_NestedErrorMessageExtracted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error": {"message": "Already purchased"}}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	err := client.BuyProduct(context.Background(), "1")
	if got := apierror.Extract(err); got != "Already purchased" {
		t.Errorf("Extract() = %q, want %q", got, "Already purchased")
	}
}

func TestClient_UnparsableErrorBodyFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>oops</html>"))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	err := client.BuyProduct(context.Background(), "1")
	if got := apierror.Extract(err); got != "request failed with status 500" {
		t.Errorf("Extract() = %q, want %q", got, "request failed with status 500")
	}
}

func TestClient_UnauthorizedIsAuthError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "token expired"}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	_, err := client.Wallet(context.Background())
	if !apierror.IsAuth(err) {
		t.Errorf("IsAuth(%v) = false, want true", err)
	}
}

func TestClient_NotFoundIsNotFoundError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	_, err := client.GetProduct(context.Background(), "missing")
	if !apierror.IsNotFound(err) {
		t.Errorf("IsNotFound(%v) = false, want true", err)
	}
}

func TestClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := NewClient(Config{BaseURL: server.URL})
	_, err := client.Wallet(context.Background())
	if err == nil {
		t.Fatal("Wallet() error = nil, want transport error")
	}
	if apierror.IsAuth(err) || apierror.IsNotFound(err) {
		t.Errorf("transport failure misclassified: %v", err)
	}
	if apierror.Extract(err) == "" {
		t.Error("Extract() returned empty message for transport failure")
	}
}

func TestClient_LoginDecodesAuthResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/account/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		w.Write([]byte(`{"token": "t1", "user": {"name": "A", "email": "a@b.com"}}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	resp, err := client.Login(context.Background(), model.Credentials{Email: "a@b.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if resp.Token != "t1" || resp.User.Name != "A" || resp.User.Email != "a@b.com" {
		t.Errorf("Login() = %+v", resp)
	}
}
