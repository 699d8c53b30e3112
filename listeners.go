package nxrouter

import "sync"

// ListenerHandle is an opaque token identifying a single registration.
// Registering the same function twice yields two distinct handles and
// two independent notifications.
type ListenerHandle uint64

type listenerEntry[T any] struct {
	id ListenerHandle
	fn func(T)
}

// listenerRegistry is an insertion-ordered list of callbacks.  Removal
// takes the handle returned by add and is idempotent.  Notification
// happens outside the lock so a callback may add or remove listeners;
// such changes take effect on the next pass.
type listenerRegistry[T any] struct {
	mu      sync.Mutex
	nextID  ListenerHandle
	entries []listenerEntry[T]
}

func (r *listenerRegistry[T]) add(fn func(T)) ListenerHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.entries = append(r.entries, listenerEntry[T]{id: r.nextID, fn: fn})
	return r.nextID
}

func (r *listenerRegistry[T]) remove(h ListenerHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.entries {
		if e.id == h {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return
		}
	}
}

func (r *listenerRegistry[T]) notify(v T) {
	r.mu.Lock()
	snapshot := make([]listenerEntry[T], len(r.entries))
	copy(snapshot, r.entries)
	r.mu.Unlock()

	for _, e := range snapshot {
		e.fn(v)
	}
}

func (r *listenerRegistry[T]) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// notifyQueue serializes mutate-and-notify history events.  A mutation
// issued from inside a listener callback must become a new, separate
// event rather than interleave with the in-progress notification pass,
// so calls arriving mid-pass are queued and applied afterwards, in
// order.
type notifyQueue struct {
	mu        sync.Mutex
	notifying bool
	pending   []func()
}

// apply runs mutate under the queue's lock and, if it reports a change,
// runs notify with the lock released.
func (q *notifyQueue) apply(mutate func() bool, notify func()) {
	q.mu.Lock()
	if q.notifying {
		q.pending = append(q.pending, func() { q.apply(mutate, notify) })
		q.mu.Unlock()
		return
	}
	if !mutate() {
		q.mu.Unlock()
		return
	}
	q.notifying = true
	q.mu.Unlock()

	notify()

	q.mu.Lock()
	q.notifying = false
	queued := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, fn := range queued {
		fn()
	}
}
