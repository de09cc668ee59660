package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Reply string `json:"reply"`
}

func TestDecodeJSON(t *testing.T) {
	var got sample
	require.NoError(t, DecodeJSON(`{"reply":"hello"}`, &got))
	assert.Equal(t, "hello", got.Reply)
}

func TestDecodeJSONWithWrapper(t *testing.T) {
	var got sample
	require.NoError(t, DecodeJSON("```json\n{\"reply\":\"hi\"}\n```", &got))
	assert.Equal(t, "hi", got.Reply)
}

func TestDecodeJSONInvalid(t *testing.T) {
	var got sample
	assert.Error(t, DecodeJSON("no json here", &got))
	assert.Error(t, DecodeJSON("   ", &got))
}
