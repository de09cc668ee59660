package utils

import (
	"encoding/base64"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// ExtractContentText concatenates the text parts of content in order.
// Thought parts and non-text parts (inline data, function calls) are dropped.
func ExtractContentText(content *genai.Content) string {
	if content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range content.Parts {
		if part != nil && part.Text != "" && !part.Thought {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}

// FirstFunctionCall returns the first function call part in content, if any.
func FirstFunctionCall(content *genai.Content) *genai.FunctionCall {
	if content == nil {
		return nil
	}
	for _, part := range content.Parts {
		if part != nil && part.FunctionCall != nil {
			return part.FunctionCall
		}
	}
	return nil
}

// DecodeDataURL splits a "data:<mime>;base64,<payload>" URL into its MIME type and bytes.
func DecodeDataURL(url string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(url), "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data url")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("data url missing payload")
	}
	mimeType, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return "", nil, fmt.Errorf("data url must be base64 encoded")
	}
	if mimeType == "" {
		mimeType = "image/png"
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode data url: %w", err)
	}
	return mimeType, data, nil
}
