package nxrouter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateCodecRoundTrip(t *testing.T) {

	assert := assert.New(t)

	// nil stays nil and occupies no state slot
	s, err := encodeState(nil)
	assert.NoError(err)
	assert.Equal("", s)
	v, err := decodeState("")
	assert.NoError(err)
	assert.Nil(v)

	s, err = encodeState(map[string]any{"from": "/pricing"})
	assert.NoError(err)
	assert.NotEmpty(s)

	v, err = decodeState(s)
	assert.NoError(err)
	assert.Equal(map[string]any{"from": "/pricing"}, v)

}

func TestStateCodecErrors(t *testing.T) {

	_, err := encodeState(func() {})
	if err == nil {
		t.Fatal("expected error for unserializable state")
	}
	assert.True(t, IsStateEncoding(err))

	_, err = decodeState("not valid base64!!!")
	assert.Error(t, err)

}
