// Package app wires configuration into the journaling services.
package app

import (
	"context"
	"fmt"

	"github.com/easeaico/shadow/internal/analyzer"
	"github.com/easeaico/shadow/internal/config"
	"github.com/easeaico/shadow/internal/dialogue"
	"github.com/easeaico/shadow/internal/insight"
	"github.com/easeaico/shadow/internal/journal"
	"github.com/easeaico/shadow/internal/memory"
	"github.com/easeaico/shadow/internal/models"
	"github.com/easeaico/shadow/internal/prompt"
	"github.com/easeaico/shadow/internal/repository"
)

// App holds every service handle built from one Config.
type App struct {
	Config    config.Config
	Store     *repository.Store
	Journal   *journal.Service
	Notes     *journal.Notes
	Events    *journal.Events
	Retriever *memory.Retriever
	Dialogue  *dialogue.Responder
	Insights  *insight.Generator
}

// New connects to the database and builds the generator-backed services.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	store, err := repository.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	chatModel, err := models.NewModel(ctx, cfg, cfg.ChatModel)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}
	classifierModel := chatModel
	if cfg.ClassifierModel != cfg.ChatModel {
		classifierModel, err = models.NewModel(ctx, cfg, cfg.ClassifierModel)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to create classifier model: %w", err)
		}
	}

	embedder, err := memory.NewEmbedder(ctx, cfg.GoogleAPIKey, cfg.EmbeddingModel)
	if err != nil {
		store.Close()
		return nil, err
	}

	prompts := prompt.NewBuilder(cfg.HistoryTurns)
	indexer := memory.NewIndexer(embedder, store.Memories)
	retriever := memory.NewRetriever(embedder, store.Memories, cfg.TopK)

	return &App{
		Config:    cfg,
		Store:     store,
		Journal:   journal.NewService(store.Entries, analyzer.NewClassifier(classifierModel, prompts), indexer),
		Notes:     journal.NewNotes(store.QuickNotes, analyzer.NewPriorityDetector(classifierModel, prompts)),
		Events:    journal.NewEvents(store.Events),
		Retriever: retriever,
		Dialogue:  dialogue.NewResponder(chatModel, prompts, retriever, store.Events, store.Profiles).WithTopK(cfg.TopK),
		Insights:  insight.NewGenerator(chatModel, prompts, store.Entries, store.Cooldowns, cfg.InsightHistorySize),
	}, nil
}

// Close releases the database pool.
func (a *App) Close() {
	if a.Store != nil {
		a.Store.Close()
	}
}
