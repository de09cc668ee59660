package models

import (
	"context"
	"fmt"
	"time"

	"github.com/easeaico/shadow/internal/config"
	"google.golang.org/adk/model"
)

// NewModel creates the configured provider's model and wraps it in the guard.
func NewModel(ctx context.Context, cfg config.Config, modelName string) (model.LLM, error) {
	var (
		llm model.LLM
		err error
	)
	switch cfg.LLMProvider {
	case config.ProviderGemini, "":
		llm, err = NewGeminiModel(ctx, cfg.GoogleAPIKey, modelName)
	case config.ProviderOpenAI:
		llm, err = NewOpenAIModel(cfg.OpenAIAPIKey, "", modelName)
	case config.ProviderOpenRouter:
		llm, err = NewOpenAIModel(cfg.OpenAIAPIKey, OpenRouterBaseURL, modelName)
	case config.ProviderGrok:
		llm, err = NewOpenAIModel(cfg.XAIAPIKey, GrokBaseURL, modelName)
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.LLMProvider)
	}
	if err != nil {
		return nil, err
	}

	return NewGuardedModel(llm, GuardConfig{
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.RequestBurst,
		MaxFailures:       cfg.BreakerMaxFailures,
		Timeout:           time.Duration(cfg.BreakerTimeoutSecs) * time.Second,
	}), nil
}
