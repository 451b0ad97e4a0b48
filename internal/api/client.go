package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/model"
	"github.com/MashaWaleed/Marketplace-React-Frontend/pkg/apierror"
)

// TokenSource supplies the current bearer token. An empty string means
// logged out and no Authorization header is sent.
type TokenSource func() string

// Client talks to the marketplace API over HTTP. It attaches the
// session's bearer token, normalizes failures into apierror values,
// and never retries or caches: one call is exactly one round trip.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      TokenSource
}

var _ Backend = (*Client)(nil)

// Config configures the API client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Token   TokenSource
}

// NewClient creates a new marketplace API client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
	}
}

// do executes one request. body is JSON-encoded when non-nil; out is
// filled from the response body when non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		if token := c.token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apierror.Transport("", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return errorFromResponse(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apierror.Transport("", fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

// errorFromResponse classifies a non-2xx response.
func errorFromResponse(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	msg := serverMessage(data)

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return apierror.Auth(msg)
	case http.StatusNotFound:
		return apierror.NotFound(msg)
	default:
		return apierror.Transport(msg, fmt.Errorf("request failed with status %d", resp.StatusCode))
	}
}

// serverMessage pulls the structured message field out of an error
// body. The API uses both a top-level message and a nested error
// object depending on the endpoint.
func serverMessage(data []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error.Message
}

// Login authenticates with POST /account/login.
func (c *Client) Login(ctx context.Context, creds model.Credentials) (model.AuthResponse, error) {
	var out model.AuthResponse
	err := c.do(ctx, http.MethodPost, "/account/login", creds, &out)
	return out, err
}

// Signup registers a new account with POST /account/signup.
func (c *Client) Signup(ctx context.Context, req model.SignupRequest) (model.AuthResponse, error) {
	var out model.AuthResponse
	err := c.do(ctx, http.MethodPost, "/account/signup", req, &out)
	return out, err
}

// CreateExternalToken obtains a token for the external payment provider.
func (c *Client) CreateExternalToken(ctx context.Context) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, "/account/create-external-token", nil, &out)
	return out.Token, err
}

// SearchProducts lists products, optionally filtered by query.
func (c *Client) SearchProducts(ctx context.Context, query string) ([]model.Product, error) {
	path := "/products"
	if query != "" {
		path += "?q=" + url.QueryEscape(query)
	}
	var out []model.Product
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// GetProduct fetches a single product by id.
func (c *Client) GetProduct(ctx context.Context, id string) (model.Product, error) {
	var out model.Product
	err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, &out)
	return out, err
}

// CreateProduct lists a new product for sale.
func (c *Client) CreateProduct(ctx context.Context, p model.Product) (model.Product, error) {
	var out model.Product
	err := c.do(ctx, http.MethodPost, "/products/selling", p, &out)
	return out, err
}

// UpdateProduct updates an owned product.
func (c *Client) UpdateProduct(ctx context.Context, id string, p model.Product) (model.Product, error) {
	var out model.Product
	err := c.do(ctx, http.MethodPut, "/products/"+url.PathEscape(id), p, &out)
	return out, err
}

// DeleteProduct removes an owned product.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), nil, nil)
}

// BuyProduct purchases a product; payment settles server-side.
func (c *Client) BuyProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/products/buy/"+url.PathEscape(id), nil, nil)
}

// PurchasedProducts lists products bought by the current user.
func (c *Client) PurchasedProducts(ctx context.Context) ([]model.Product, error) {
	var out []model.Product
	err := c.do(ctx, http.MethodGet, "/products/purchased", nil, &out)
	return out, err
}

// SellingProducts lists products the current user has on sale.
func (c *Client) SellingProducts(ctx context.Context) ([]model.Product, error) {
	var out []model.Product
	err := c.do(ctx, http.MethodGet, "/products/selling", nil, &out)
	return out, err
}

// SoldProducts lists products the current user has sold.
func (c *Client) SoldProducts(ctx context.Context) ([]model.Product, error) {
	var out []model.Product
	err := c.do(ctx, http.MethodGet, "/products/sold", nil, &out)
	return out, err
}

// Analytics fetches the aggregate product counters.
func (c *Client) Analytics(ctx context.Context) (model.Analytics, error) {
	var out model.Analytics
	err := c.do(ctx, http.MethodGet, "/products/analytics", nil, &out)
	return out, err
}

// Wallet fetches the e-wallet balance.
func (c *Client) Wallet(ctx context.Context) (model.Wallet, error) {
	var out model.Wallet
	err := c.do(ctx, http.MethodGet, "/e-wallet", nil, &out)
	return out, err
}

// AddFunds starts an add-funds flow and returns the external payment
// URL the user must be redirected to. The balance only changes after
// the provider confirms, observed via refetch.
func (c *Client) AddFunds(ctx context.Context, amount float64) (string, error) {
	var out model.AddFundsResponse
	err := c.do(ctx, http.MethodPost, "/e-wallet", map[string]float64{"amount": amount}, &out)
	return out.PaymentURL, err
}

// Transactions lists the e-wallet transaction history.
func (c *Client) Transactions(ctx context.Context) ([]model.Transaction, error) {
	var out []model.Transaction
	err := c.do(ctx, http.MethodGet, "/e-wallet/transactions", nil, &out)
	return out, err
}
