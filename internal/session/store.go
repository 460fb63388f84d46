// Package session owns one gallery view-model per browser session.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/Zachkp/portfolio/internal/gallery"
)

// CookieName is the cookie that carries the session id.
const CookieName = "portfolio_session"

// Store maps session ids to isolated view-models over one shared catalog.
//
// Only sessions whose filter differs from All are kept. A session that
// never selected anything, or went back to All, is indistinguishable from
// a fresh one, so reads for unknown ids never allocate an entry. Kept
// sessions are bounded by count and by idle time.
type Store struct {
	catalog *gallery.Catalog

	// OnCreate runs once for each view-model that may be kept, under the
	// store lock, before the first update is applied to it.
	OnCreate func(id string, vm *gallery.ViewModel)

	mu       sync.Mutex
	sessions *expirable.LRU[string, *gallery.ViewModel]
}

// NewStore returns a store holding at most size sessions, each dropped
// after ttl without a request. A ttl of zero disables expiry and a size of
// zero disables the cap.
func NewStore(catalog *gallery.Catalog, ttl time.Duration, size int) *Store {
	if size < 0 {
		size = 0
	}
	return &Store{
		catalog:  catalog,
		sessions: expirable.NewLRU[string, *gallery.ViewModel](size, nil, ttl),
	}
}

// NewID returns a fresh session id.
func NewID() string {
	return uuid.NewString()
}

// Valid reports whether id looks like an id issued by NewID.
func Valid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// View runs fn against the view-model for id without creating an entry.
// Unknown ids see a fresh view-model that is discarded afterwards.
func (s *Store) View(id string, fn func(vm *gallery.ViewModel)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	vm, ok := s.sessions.Get(id)
	if !ok {
		fn(gallery.NewViewModel(s.catalog))
		return
	}
	// Re-adding resets the idle timer.
	s.sessions.Add(id, vm)
	fn(vm)
}

// Update runs fn against the view-model for id and keeps the result when
// its filter is not All. Calls for the same id never overlap.
func (s *Store) Update(id string, fn func(vm *gallery.ViewModel)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	vm, ok := s.sessions.Get(id)
	if !ok {
		vm = gallery.NewViewModel(s.catalog)
		if s.OnCreate != nil {
			s.OnCreate(id, vm)
		}
	}
	fn(vm)

	switch {
	case vm.Filter() != gallery.All:
		s.sessions.Add(id, vm)
	case ok:
		s.sessions.Remove(id)
	}
}

// Len returns the number of kept sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions.Len()
}
