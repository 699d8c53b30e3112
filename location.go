package nxrouter

import (
	"net/url"
	"strings"
	"sync"

	"go.uber.org/atomic"
)

// Location is an immutable snapshot of where in the application the
// user currently is.  It is replaced wholesale on every navigation
// event, never mutated in place.
type Location struct {
	Path  string
	Query string // raw query string, without the leading "?"
	Hash  string // fragment, without the leading "#"
	State any    // opaque navigation state, nil if none
}

// PathQuery returns the path joined with the encoded query, the form
// used when handing a location back to a history provider.
func (l Location) PathQuery() string {
	if l.Query == "" {
		return l.Path
	}
	return l.Path + "?" + l.Query
}

// parseLocation splits a raw path-and-query string into a Location.
// A string beginning with "#" is an in-page anchor target and is kept
// verbatim as the path so downstream dispatch sees exactly what was
// pushed.
func parseLocation(raw string, state any) Location {
	if strings.HasPrefix(raw, "#") {
		return Location{Path: raw, Hash: strings.TrimPrefix(raw, "#"), State: state}
	}
	u, err := url.Parse(raw)
	if err != nil {
		return Location{Path: raw, State: state}
	}
	return Location{Path: u.Path, Query: u.RawQuery, Hash: u.Fragment, State: state}
}

// LocationContext pairs a Location with a monotonically increasing
// revision counter.  Equality for change-detection purposes is revision
// equality only; two contexts holding identical locations from distinct
// dispatches are not equal.
type LocationContext struct {
	Location Location
	Revision uint32
}

// Equal reports whether both contexts came from the same dispatch.
func (c LocationContext) Equal(o LocationContext) bool {
	return c.Revision == o.Revision
}

// locationStore is the single source of truth for the current location.
// Every Dispatch bumps the revision regardless of whether the location
// changed, so every history event is observed as a distinct state.
type locationStore struct {
	mu        sync.Mutex
	loc       Location
	revision  *atomic.Uint32
	listeners listenerRegistry[LocationContext]
}

func newLocationStore() *locationStore {
	return &locationStore{revision: atomic.NewUint32(0)}
}

// Dispatch stores loc, bumps the revision and synchronously notifies
// all current subscribers in registration order.
func (s *locationStore) Dispatch(loc Location) LocationContext {
	s.mu.Lock()
	s.loc = loc
	rev := s.revision.Inc()
	ctx := LocationContext{Location: loc, Revision: rev}
	s.mu.Unlock()

	s.listeners.notify(ctx)
	return ctx
}

// Context returns the current location context.  Readers must always
// re-read the full context rather than caching subfields.
func (s *locationStore) Context() LocationContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	return LocationContext{Location: s.loc, Revision: s.revision.Load()}
}

func (s *locationStore) Subscribe(fn func(LocationContext)) ListenerHandle {
	return s.listeners.add(fn)
}

func (s *locationStore) Unsubscribe(h ListenerHandle) {
	s.listeners.remove(h)
}
