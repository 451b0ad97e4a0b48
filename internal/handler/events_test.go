package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/cache"
)

func TestParseKeyPrefixes(t *testing.T) {
	tests := []struct {
		raw  string
		want []cache.Key
	}{
		{"", nil},
		{"products", []cache.Key{cache.K("products")}},
		{"products,wallet", []cache.Key{cache.K("products"), cache.K("wallet")}},
		{"product/42", []cache.Key{cache.K("product", "42")}},
		{" products , ,wallet ", []cache.Key{cache.K("products"), cache.K("wallet")}},
	}

	for _, tt := range tests {
		got := parseKeyPrefixes(tt.raw)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseKeyPrefixes(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestStreamRequiresKeys(t *testing.T) {
	h := NewEventsHandler(cache.New())

	rec := httptest.NewRecorder()
	h.Stream(rec, httptest.NewRequest(http.MethodGet, "/events", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestStreamSendsInvalidationEvents(t *testing.T) {
	store := cache.New()
	defer store.Close()
	h := NewEventsHandler(store)

	// A page rendered the wallet, so the entry exists.
	if _, err := cache.Fetch(context.Background(), store, cache.K("wallet"), func(context.Context) (string, error) {
		return "balance", nil
	}); err != nil {
		t.Fatalf("warm wallet entry: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/events?keys=wallet,transactions", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		h.Stream(rec, req)
		close(done)
	}()

	// Let the handler subscribe before invalidating.
	time.Sleep(50 * time.Millisecond)
	store.Invalidate(cache.K("wallet"))
	time.Sleep(50 * time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stream did not stop after context cancel")
	}

	body := rec.Body.String()
	if !strings.Contains(body, "event: invalidated") {
		t.Errorf("body missing invalidated event: %q", body)
	}
	if !strings.Contains(body, "data: wallet") {
		t.Errorf("body missing key payload: %q", body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q, want text/event-stream", ct)
	}
}
