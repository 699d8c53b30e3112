package nxrouter

import (
	"errors"
	"fmt"
)

// Sentinel errors for navigation and prefetch operations.
var (
	ErrNotBrowser    = errors.New("nxrouter: not in browser (js) environment")
	ErrQueryEncoding = errors.New("nxrouter: query value cannot be encoded")
	ErrStateEncoding = errors.New("nxrouter: state value cannot be encoded")
	ErrRouteFetch    = errors.New("nxrouter: route fetch failed")
)

// NavigationError is returned by the push/replace variants when the
// history provider cannot perform the mutation, most commonly because
// the query or state value could not be serialized.  The wrapped error
// is one of the sentinel errors above.
type NavigationError struct {
	Path string // the (basename-prefixed) path of the failed navigation
	Err  error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("nxrouter: navigation to %q failed: %v", e.Path, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }

// IsQueryEncoding checks if err was caused by an unserializable query value.
func IsQueryEncoding(err error) bool {
	return errors.Is(err, ErrQueryEncoding)
}

// IsStateEncoding checks if err was caused by an unserializable state value.
func IsStateEncoding(err error) bool {
	return errors.Is(err, ErrStateEncoding)
}

func navErr(path string, err error) error {
	if err == nil {
		return nil
	}
	return &NavigationError{Path: path, Err: err}
}
