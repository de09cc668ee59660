package models

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

// ErrEmptyResponse is returned when a model yields no content.
var ErrEmptyResponse = errors.New("empty model response")

// Generate runs a non-streaming request and returns the final response.
func Generate(ctx context.Context, llm model.LLM, req *model.LLMRequest) (*model.LLMResponse, error) {
	if llm == nil {
		return nil, fmt.Errorf("llm model is not configured")
	}
	if req == nil {
		return nil, fmt.Errorf("request cannot be nil")
	}

	var last *model.LLMResponse
	for resp, err := range llm.GenerateContent(ctx, req, false) {
		if err != nil {
			return nil, err
		}
		if resp != nil {
			last = resp
		}
	}
	if last == nil {
		return nil, ErrEmptyResponse
	}
	if last.ErrorCode != "" {
		return nil, fmt.Errorf("model error %s: %s", last.ErrorCode, last.ErrorMessage)
	}
	if last.Content == nil || len(last.Content.Parts) == 0 {
		return nil, ErrEmptyResponse
	}
	return last, nil
}

// NewRequest builds a request with a system instruction and user contents.
func NewRequest(system string, contents ...*genai.Content) *model.LLMRequest {
	req := &model.LLMRequest{
		Contents: contents,
		Config:   &genai.GenerateContentConfig{},
	}
	if system != "" {
		req.Config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	return req
}
