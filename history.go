package nxrouter

// HistoryKind identifies which history provider variant is active.
// The set is closed: browser-URL-backed, hash-fragment-backed and
// in-memory-backed.
type HistoryKind int

const (
	// KindBrowser is history backed by the browser URL and window.history.
	KindBrowser HistoryKind = iota
	// KindHash is history kept in the "#" fragment of the browser URL.
	KindHash
	// KindMemory is history kept entirely in memory, useful for tests
	// and non-browser environments.
	KindMemory
)

func (k HistoryKind) String() string {
	switch k {
	case KindBrowser:
		return "browser"
	case KindHash:
		return "hash"
	case KindMemory:
		return "memory"
	}
	return "unknown"
}

// History is the platform capability for manipulating and observing the
// navigation stack.  The core is polymorphic over this interface and
// never branches on the concrete variant except to report its Kind.
//
// A path passed to the mutation methods may carry a query string and
// fragment ("/a?b=c#d").  Query values passed to the query variants are
// structured (a map or struct), not pre-encoded strings; encoding
// failures are reported before any history mutation takes place.
type History interface {
	// Location returns the current location snapshot.
	Location() Location

	// Go moves delta entries through the stack, negative for back.
	Go(delta int)

	Push(path string)
	Replace(path string)

	PushWithState(path string, state any) error
	ReplaceWithState(path string, state any) error

	PushWithQuery(path string, query any) error
	PushWithQueryAndState(path string, query any, state any) error
	ReplaceWithQueryAndState(path string, query any, state any) error

	// Listen registers fn to be called synchronously after every history
	// mutation, in registration order.  The returned func unregisters
	// exactly this registration and is idempotent.
	Listen(fn func()) (unlisten func())

	Kind() HistoryKind
}

// Verify that all three variants satisfy the interface.
var (
	_ History = (*BrowserHistory)(nil)
	_ History = (*HashHistory)(nil)
	_ History = (*MemoryHistory)(nil)
)
