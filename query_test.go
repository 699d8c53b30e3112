package nxrouter

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeQuery(t *testing.T) {

	type tcase struct {
		query   any
		want    string // Encode() of the expected values
		wantErr bool
	}

	type searchQuery struct {
		Q    string `json:"q"`
		Page int    `json:"page"`
	}

	tclist := []tcase{
		{nil, "", false},
		{url.Values{"a": {"1", "2"}}, "a=1&a=2", false},
		{map[string]string{"q": "rust"}, "q=rust", false},
		{map[string]any{"q": "rust", "page": 2}, "page=2&q=rust", false},
		{map[string]any{"flag": true, "empty": nil}, "empty=&flag=true", false},
		{map[string]any{"tags": []any{"a", "b"}}, "tags=a&tags=b", false},
		{searchQuery{Q: "go", Page: 3}, "page=3&q=go", false},
		{map[string]any{"bad": func() {}}, "", true},
		{"just a string", "", true}, // must encode to an object
		{42, "", true},
	}

	for i, tc := range tclist {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			vals, err := encodeQuery(tc.query)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %#v", tc.query)
				}
				assert.True(t, IsQueryEncoding(err))
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			assert.Equal(t, tc.want, vals.Encode())
		})
	}

}

func TestJoinPathQuery(t *testing.T) {
	assert.Equal(t, "/a", joinPathQuery("/a", nil))
	assert.Equal(t, "/a?b=c", joinPathQuery("/a", url.Values{"b": {"c"}}))
}
