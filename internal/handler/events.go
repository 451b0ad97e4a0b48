package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/cache"
	"github.com/MashaWaleed/Marketplace-React-Frontend/pkg/response"
)

// EventsHandler streams cache invalidation notices over Server-Sent
// Events. Pages subscribe to the keys they rendered from and reload
// when one of them is invalidated.
type EventsHandler struct {
	cache *cache.Store
}

func NewEventsHandler(store *cache.Store) *EventsHandler {
	return &EventsHandler{cache: store}
}

// Stream subscribes to the comma-separated key prefixes in the keys
// query parameter. Key segments within one prefix are separated by
// slashes, e.g. keys=products,product/42.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		response.Fail(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	prefixes := parseKeyPrefixes(r.URL.Query().Get("keys"))
	if len(prefixes) == 0 {
		response.Fail(w, http.StatusBadRequest, "keys parameter is required")
		return
	}

	ch, cancel := h.cache.Subscribe(prefixes...)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case key, open := <-ch:
			if !open {
				return
			}
			fmt.Fprintf(w, "event: invalidated\ndata: %s\n\n", key.String())
			flusher.Flush()
		}
	}
}

func parseKeyPrefixes(raw string) []cache.Key {
	var prefixes []cache.Key
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		prefixes = append(prefixes, cache.Key(strings.Split(part, "/")))
	}
	return prefixes
}
