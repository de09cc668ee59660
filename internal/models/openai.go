// Package models provides generator adapters for the supported model providers.
package models

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"log/slog"
	"runtime"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

// Base URLs of the OpenAI-compatible providers.
const (
	OpenRouterBaseURL = "https://openrouter.ai/api/v1"
	GrokBaseURL       = "https://api.x.ai/v1"
)

// openaiModel adapts an OpenAI-compatible chat client to model.LLM.
type openaiModel struct {
	client             *openai.Client
	name               string
	versionHeaderValue string
}

// NewOpenAIModel creates an OpenAI-compatible model. An empty baseURL targets OpenAI itself.
func NewOpenAIModel(apiKey, baseURL, modelName string) (model.LLM, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if modelName == "" {
		return nil, fmt.Errorf("model name cannot be empty")
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)

	// Build the UA header once instead of on every request.
	headerValue := fmt.Sprintf("shadow-go/%s go/%s",
		"1.0.0", strings.TrimPrefix(runtime.Version(), "go"))

	return &openaiModel{
		name:               modelName,
		client:             &client,
		versionHeaderValue: headerValue,
	}, nil
}

func (m *openaiModel) Name() string {
	return m.name
}

// GenerateContent always performs a single blocking call; stream is ignored
// because every caller in this module consumes only the final response.
func (m *openaiModel) GenerateContent(ctx context.Context, req *model.LLMRequest, stream bool) iter.Seq2[*model.LLMResponse, error] {
	return func(yield func(*model.LLMResponse, error) bool) {
		resp, err := m.generate(ctx, req)
		yield(resp, err)
	}
}

func (m *openaiModel) generate(ctx context.Context, req *model.LLMRequest) (*model.LLMResponse, error) {
	params := buildOpenAIParams(req, m.name)

	resp, err := m.client.Chat.Completions.New(ctx, *params, option.WithHeader("user-agent", m.versionHeaderValue))
	if err != nil {
		slog.Error("failed to call llm API", "model", m.name, "error", err.Error())
		return nil, fmt.Errorf("failed to call chat completions API: %w", err)
	}

	if resp == nil || len(resp.Choices) == 0 {
		return &model.LLMResponse{}, nil
	}

	message := resp.Choices[0].Message
	content := &genai.Content{
		Role:  "model",
		Parts: []*genai.Part{},
	}
	if message.Content != "" {
		content.Parts = append(content.Parts, &genai.Part{Text: message.Content})
	}

	for _, call := range message.ToolCalls {
		// Only function tools are supported by the compatible providers.
		if call.Type != "function" || call.Function.Name == "" {
			continue
		}
		content.Parts = append(content.Parts, &genai.Part{
			FunctionCall: &genai.FunctionCall{
				ID:   call.ID,
				Name: call.Function.Name,
				Args: parseFunctionArgs(call.Function.Arguments),
			},
		})
	}

	return &model.LLMResponse{
		Content:      content,
		TurnComplete: true,
	}, nil
}

func parseFunctionArgs(jsonStr string) map[string]any {
	if jsonStr == "" {
		return make(map[string]any)
	}
	var args map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &args); err != nil {
		slog.Error("failed to parse function arguments", "error", err.Error(), "json", jsonStr)
		return make(map[string]any)
	}
	return args
}
