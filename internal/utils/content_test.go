package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestExtractContentTextDropsNonText(t *testing.T) {
	content := &genai.Content{
		Role: string(genai.RoleModel),
		Parts: []*genai.Part{
			{Text: "Hello"},
			{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte{1, 2}}},
			{Text: "thinking...", Thought: true},
			{Text: " world"},
		},
	}
	assert.Equal(t, "Hello world", ExtractContentText(content))
	assert.Equal(t, "", ExtractContentText(nil))
}

func TestFirstFunctionCall(t *testing.T) {
	content := &genai.Content{Parts: []*genai.Part{
		{Text: "sure"},
		{FunctionCall: &genai.FunctionCall{Name: "create_event_tool"}},
	}}
	call := FirstFunctionCall(content)
	require.NotNil(t, call)
	assert.Equal(t, "create_event_tool", call.Name)
	assert.Nil(t, FirstFunctionCall(&genai.Content{}))
}

func TestDecodeDataURL(t *testing.T) {
	mimeType, data, err := DecodeDataURL("data:image/jpeg;base64,aGk=")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mimeType)
	assert.Equal(t, []byte("hi"), data)

	_, _, err = DecodeDataURL("https://example.com/cat.png")
	assert.Error(t, err)
	_, _, err = DecodeDataURL("data:image/png,raw")
	assert.Error(t, err)
}
