package nxrouter

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// encodeQuery converts a structured query value into url.Values.  The
// value may be a url.Values (used as-is), a map, or a struct with json
// tags.  Anything json cannot serialize (funcs, channels, NaN) or that
// does not encode to an object yields ErrQueryEncoding, reported before
// any history mutation happens.
func encodeQuery(query any) (url.Values, error) {
	switch q := query.(type) {
	case nil:
		return nil, nil
	case url.Values:
		return q, nil
	case map[string]string:
		vals := make(url.Values, len(q))
		for k, v := range q {
			vals.Set(k, v)
		}
		return vals, nil
	}

	b, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryEncoding, err)
	}

	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("%w: query must encode to an object, got %s", ErrQueryEncoding, b)
	}

	vals := make(url.Values, len(m))
	for k, v := range m {
		if list, ok := v.([]any); ok {
			for _, item := range list {
				vals.Add(k, queryScalar(item))
			}
			continue
		}
		vals.Add(k, queryScalar(v))
	}
	return vals, nil
}

func queryScalar(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	}
	// nested objects/arrays travel as their JSON text
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// joinPathQuery appends an encoded query to path the same way a query
// string is appended during plain navigation.
func joinPathQuery(path string, vals url.Values) string {
	q := vals.Encode()
	if q == "" {
		return path
	}
	return path + "?" + q
}
