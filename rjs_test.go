package nxrouter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Off-browser the js calls are skipped but listener notification still
// runs, which is enough to exercise the event ordering.  A navigation
// issued from inside a listener must run as a separate event after the
// in-progress pass, the same guarantee MemoryHistory gives.
func TestJSHistoryReentrantNavigation(t *testing.T) {

	h := &jsHistory{}

	var order []string
	redirected := false
	h.listeners.add(func(struct{}) {
		order = append(order, "first-start")
		if !redirected {
			redirected = true
			h.replacePathAndQuery("/login/expired", "")
		}
		order = append(order, "first-end")
	})
	h.listeners.add(func(struct{}) {
		order = append(order, "second")
	})

	h.pushPathAndQuery("/login", "")

	// the first pass completes for both listeners before the replace
	// issued mid-pass starts its own pass
	assert.Equal(t, []string{
		"first-start", "first-end", "second",
		"first-start", "first-end", "second",
	}, order)

}
