// Package cache is a keyed read-through store for server resources.
// Each entry tracks its own fetch status; mutations invalidate entries
// by key prefix so dependent views refetch instead of showing stale
// data.
package cache

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

// Key is an ordered tuple identifying a cached resource, e.g.
// K("products", "phone") or K("wallet").
type Key []string

// K builds a key from its parts.
func K(parts ...string) Key {
	return Key(parts)
}

// String joins the tuple for use as a map key.
func (k Key) String() string {
	return strings.Join(k, "/")
}

// HasPrefix reports whether k starts with the leading elements of
// prefix, so K("products") covers K("products", "phone").
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i, p := range prefix {
		if k[i] != p {
			return false
		}
	}
	return true
}

// Status is the lifecycle state of a cache entry.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Loader fetches the value for a key. It runs at most once per key at
// a time; concurrent readers attach to the pending result.
type Loader func(ctx context.Context) (interface{}, error)

// entry is one cached resource. value keeps the last successful
// payload even after a failed refetch.
type entry struct {
	key        Key
	status     Status
	value      interface{}
	err        error
	stale      bool
	fetchedAt  time.Time
	lastAccess time.Time
	done       chan struct{} // non-nil while a load is in flight
}

type subscriber struct {
	prefixes []Key
	ch       chan Key
}

// Store is the process-wide cache. Writers are the loader-completion
// path and Mutate's invalidation; readers are the page controllers.
type Store struct {
	mu        sync.Mutex
	entries   map[string]*entry
	subs      map[int]*subscriber
	nextSubID int

	maxIdle         time.Duration
	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	closeOnce       sync.Once
}

// New creates a store with automatic cleanup of long-unused entries.
func New() *Store {
	s := &Store{
		entries:         make(map[string]*entry),
		subs:            make(map[int]*subscriber),
		maxIdle:         30 * time.Minute,
		cleanupInterval: time.Minute,
		stopCleanup:     make(chan struct{}),
	}

	go s.cleanup()

	return s
}

// Read returns the cached value for key, loading it with load when the
// entry is missing, stale, or failed. While a load is in flight, other
// readers of the same key wait for its result instead of issuing a
// duplicate request; a waiter whose ctx ends detaches without touching
// the entry.
func (s *Store) Read(ctx context.Context, key Key, load Loader) (interface{}, error) {
	ks := key.String()

	for {
		s.mu.Lock()
		e, ok := s.entries[ks]
		if !ok {
			e = &entry{key: key}
			s.entries[ks] = e
		}
		e.lastAccess = time.Now()

		if e.status == StatusSuccess && !e.stale {
			value := e.value
			s.mu.Unlock()
			return value, nil
		}

		if e.status == StatusLoading {
			done := e.done
			s.mu.Unlock()

			select {
			case <-done:
			case <-ctx.Done():
				// The consumer went away; the in-flight load keeps
				// running and settles the entry for the next reader.
				return nil, ctx.Err()
			}

			s.mu.Lock()
			if e.status == StatusSuccess && !e.stale {
				value := e.value
				s.mu.Unlock()
				return value, nil
			}
			if e.status == StatusError {
				err := e.err
				s.mu.Unlock()
				return nil, err
			}
			// Invalidated while in flight or dropped; take another pass.
			s.mu.Unlock()
			continue
		}

		// Idle, failed, or stale: this caller owns the load.
		e.status = StatusLoading
		e.stale = false
		e.err = nil
		done := make(chan struct{})
		e.done = done
		s.mu.Unlock()

		value, err := load(ctx)

		s.mu.Lock()
		e.lastAccess = time.Now()
		e.done = nil
		switch {
		case err == nil:
			e.status = StatusSuccess
			e.value = value
			e.fetchedAt = time.Now()
		case errors.Is(err, context.Canceled):
			// Navigation away mid-fetch: discard the outcome rather
			// than recording the cancellation as a failure.
			e.status = StatusIdle
		default:
			e.status = StatusError
			e.err = err
		}
		close(done)
		s.mu.Unlock()

		if err != nil {
			return nil, err
		}
		return value, nil
	}
}

// Invalidate marks every entry matching one of the key prefixes stale.
// Already-mounted consumers are notified so they refetch; failed
// entries refetch on their next read regardless.
func (s *Store) Invalidate(prefixes ...Key) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if !matchesAny(e.key, prefixes) {
			continue
		}
		if e.status == StatusSuccess || e.status == StatusLoading {
			e.stale = true
		}
		s.notifyLocked(e.key)
	}
}

// Mutate runs fn exactly once - mutations are user-triggered and never
// deduplicated - then invalidates the given key prefixes, only on
// success.
func (s *Store) Mutate(ctx context.Context, fn func(context.Context) error, invalidates ...Key) error {
	if err := fn(ctx); err != nil {
		return err
	}
	s.Invalidate(invalidates...)
	return nil
}

// Subscribe returns a channel of keys whose entries were invalidated
// under any of the given prefixes. The cancel func must be called when
// the consumer unmounts.
func (s *Store) Subscribe(prefixes ...Key) (<-chan Key, func()) {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	sub := &subscriber{
		prefixes: prefixes,
		ch:       make(chan Key, 16),
	}
	s.subs[id] = sub
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub.ch)
		}
	}
	return sub.ch, cancel
}

// notifyLocked fans an invalidated key out to matching subscribers.
// Sends are non-blocking: a slow consumer misses a hint, not the data.
func (s *Store) notifyLocked(key Key) {
	for _, sub := range s.subs {
		if !matchesAny(key, sub.prefixes) {
			continue
		}
		select {
		case sub.ch <- key:
		default:
		}
	}
}

// Status returns the current status for key; missing entries are idle.
func (s *Store) Status(key Key) Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key.String()]; ok {
		return e.status
	}
	return StatusIdle
}

// Clear drops every entry. Used on logout: all cached resources are
// scoped to the authenticated user.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*entry)
}

// Close stops the background cleanup goroutine.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopCleanup)
	})
	return nil
}

// cleanup periodically drops entries that have not been read for a
// while. In-flight entries are left alone.
func (s *Store) cleanup() {
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.removeIdle()
		case <-s.stopCleanup:
			return
		}
	}
}

func (s *Store) removeIdle() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-s.maxIdle)
	for ks, e := range s.entries {
		if e.status == StatusLoading {
			continue
		}
		if e.lastAccess.Before(cutoff) {
			delete(s.entries, ks)
		}
	}
}

func matchesAny(key Key, prefixes []Key) bool {
	for _, p := range prefixes {
		if key.HasPrefix(p) {
			return true
		}
	}
	return false
}

// Fetch reads key through s with a typed loader.
func Fetch[T any](ctx context.Context, s *Store, key Key, load func(context.Context) (T, error)) (T, error) {
	value, err := s.Read(ctx, key, func(ctx context.Context) (interface{}, error) {
		return load(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	typed, ok := value.(T)
	if !ok {
		var zero T
		return zero, errors.New("cache: unexpected value type for key " + key.String())
	}
	return typed, nil
}
