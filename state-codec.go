package nxrouter

import (
	"encoding/base64"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Navigation state crosses the JS history boundary as a string, so it
// is packed with msgpack and wrapped in base64.  The in-memory history
// keeps state values as-is and never goes through this codec.

func encodeState(state any) (string, error) {
	if state == nil {
		return "", nil
	}
	b, err := msgpack.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStateEncoding, err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

func decodeState(s string) (any, error) {
	if s == "" {
		return nil, nil
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStateEncoding, err)
	}
	var v any
	if err := msgpack.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStateEncoding, err)
	}
	return v, nil
}
