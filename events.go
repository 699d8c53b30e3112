package nxrouter

import "sync"

// Lifecycle event names published by the prefetch engine.  Consumed by
// instrumentation collaborators.
const (
	EventRouteChangeError    = "route_change_error"
	EventRouteChangeComplete = "route_change_complete"
)

// EventHandle is an opaque token for a lifecycle event registration.
type EventHandle uint64

type eventEntry struct {
	id   EventHandle
	name string
	fn   func(path string)
}

// EventRegistry dispatches string-named lifecycle events to registered
// handlers.  Handlers for the same name fire in registration order;
// registering the same function twice produces two notifications.
type EventRegistry struct {
	mu      sync.Mutex
	nextID  EventHandle
	entries []eventEntry
}

// On registers fn for the named event and returns a handle for Off.
func (r *EventRegistry) On(name string, fn func(path string)) EventHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.entries = append(r.entries, eventEntry{id: r.nextID, name: name, fn: fn})
	return r.nextID
}

// Off removes the registration identified by h.  It is idempotent.
func (r *EventRegistry) Off(h EventHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.entries {
		if e.id == h {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return
		}
	}
}

func (r *EventRegistry) emit(name, path string) {
	r.mu.Lock()
	snapshot := make([]eventEntry, 0, len(r.entries))
	for _, e := range r.entries {
		if e.name == name {
			snapshot = append(snapshot, e)
		}
	}
	r.mu.Unlock()

	for _, e := range snapshot {
		e.fn(path)
	}
}
