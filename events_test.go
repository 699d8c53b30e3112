package nxrouter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventRegistry(t *testing.T) {

	assert := assert.New(t)

	var reg EventRegistry
	var got []string

	record := func(tag string) func(string) {
		return func(path string) { got = append(got, tag+":"+path) }
	}

	h1 := reg.On(EventRouteChangeComplete, record("a"))
	reg.On(EventRouteChangeComplete, record("b"))
	reg.On(EventRouteChangeError, record("c"))
	reg.On(EventRouteChangeComplete, record("a")) // duplicates notify independently

	reg.emit(EventRouteChangeComplete, "/blog")
	assert.Equal([]string{"a:/blog", "b:/blog", "a:/blog"}, got)

	got = nil
	reg.emit(EventRouteChangeError, "/blog")
	assert.Equal([]string{"c:/blog"}, got)

	got = nil
	reg.Off(h1)
	reg.Off(h1) // idempotent
	reg.emit(EventRouteChangeComplete, "/blog")
	assert.Equal([]string{"b:/blog", "a:/blog"}, got)

	// unknown names fall through silently
	reg.emit("route_change_start", "/blog")
	assert.Equal([]string{"b:/blog", "a:/blog"}, got)

}
