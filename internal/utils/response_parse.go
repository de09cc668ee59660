package utils

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSON trims model chatter and code fences around the outermost JSON object.
func ExtractJSON(raw string) string {
	clean := strings.TrimSpace(raw)
	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start >= 0 && end > start {
		clean = clean[start : end+1]
	}
	return clean
}

// DecodeJSON extracts and decodes a JSON object from model output.
func DecodeJSON(raw string, target any) error {
	clean := ExtractJSON(raw)
	if clean == "" {
		return fmt.Errorf("empty model output")
	}
	if err := json.Unmarshal([]byte(clean), target); err != nil {
		return fmt.Errorf("failed to parse model json: %w", err)
	}
	return nil
}
