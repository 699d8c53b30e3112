package nxrouter

import "github.com/vugu/vugu"

// RenderFunc produces the renderable output for a resolved path.  An
// unmatched path is the render function's responsibility to handle.
type RenderFunc func(path string) vugu.Builder

// Dispatch picks what to render for the current (already
// basename-stripped) path.  A non-empty path is passed to render
// directly; an empty path falls back to defaultPath; if both are empty
// the empty renderable is returned.  Pure function, no error path.
func Dispatch(path, defaultPath string, render RenderFunc) vugu.Builder {
	if path == "" {
		path = defaultPath
	}
	if path == "" {
		return emptyBuilder{}
	}
	return render(path)
}

// emptyBuilder renders nothing.
type emptyBuilder struct{}

func (emptyBuilder) Build(in *vugu.BuildIn) (out *vugu.BuildOut) {
	return &vugu.BuildOut{}
}

// EmptyBuilder returns the Builder which renders nothing.
func EmptyBuilder() vugu.Builder { return emptyBuilder{} }
