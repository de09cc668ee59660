// Package memory 实现日志条目的准入、向量化与按用户隔离的检索。
package memory

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"
)

// Embedder turns text into vectors.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	EmbedDocument(ctx context.Context, text string) ([]float32, error)
}

// EmbeddingDimensions matches the vector(768) column of memory_records.
const EmbeddingDimensions = 768

// GenAIEmbedder embeds text through the Gemini embedding API.
type GenAIEmbedder struct {
	client *genai.Client
	model  string
}

// NewEmbedder creates the GenAI embedder.
func NewEmbedder(ctx context.Context, apiKey, modelName string) (*GenAIEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("google api key is required for embeddings")
	}
	if modelName == "" {
		modelName = "text-embedding-004"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GenAIEmbedder{
		client: client,
		model:  modelName,
	}, nil
}

func (e *GenAIEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return e.embed(ctx, text, "RETRIEVAL_QUERY")
}

func (e *GenAIEmbedder) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	return e.embed(ctx, text, "RETRIEVAL_DOCUMENT")
}

func (e *GenAIEmbedder) embed(ctx context.Context, text, taskType string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("cannot embed empty text")
	}

	dims := int32(EmbeddingDimensions)
	resp, err := e.client.Models.EmbedContent(ctx, e.model, genai.Text(text), &genai.EmbedContentConfig{
		TaskType:             taskType,
		OutputDimensionality: &dims,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to embed content: %w", err)
	}
	if resp == nil || len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil {
		return nil, fmt.Errorf("empty embedding response")
	}
	values := resp.Embeddings[0].Values
	switch {
	case len(values) == EmbeddingDimensions:
		return values, nil
	case len(values) > EmbeddingDimensions:
		slog.Warn("embedding dimensions exceed target, truncating", "actual", len(values), "target", EmbeddingDimensions, "model", e.model)
		return values[:EmbeddingDimensions], nil
	default:
		return nil, fmt.Errorf("embedding dimensions mismatch: got %d want %d", len(values), EmbeddingDimensions)
	}
}
