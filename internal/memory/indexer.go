package memory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/easeaico/shadow/internal/types"
)

// VectorIndex stores memory records and answers user-scoped similarity queries.
// Query must apply the user filter inside the index, never after the fact.
type VectorIndex interface {
	Upsert(ctx context.Context, rec *types.MemoryRecord) error
	Delete(ctx context.Context, id string) error
	Query(ctx context.Context, userID string, vector []float32, k int) ([]types.MemoryRecord, error)
}

// IndexError reports a failed index operation for one entry.
type IndexError struct {
	EntryID string
	Err     error
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("failed to index entry %s: %v", e.EntryID, e.Err)
}

func (e *IndexError) Unwrap() error {
	return e.Err
}

// Indexer writes admitted entries into the vector index.
type Indexer struct {
	embedder Embedder
	index    VectorIndex
	nowFunc  func() time.Time
}

// NewIndexer creates an Indexer.
func NewIndexer(embedder Embedder, index VectorIndex) *Indexer {
	return &Indexer{embedder: embedder, index: index, nowFunc: time.Now}
}

// Index embeds text and upserts the record under entryID, replacing any prior one.
func (i *Indexer) Index(ctx context.Context, entryID, text, userID, date string) error {
	if entryID == "" || userID == "" {
		return &IndexError{EntryID: entryID, Err: errors.New("entry id and user id are required")}
	}
	vec, err := i.embedder.EmbedDocument(ctx, text)
	if err != nil {
		return &IndexError{EntryID: entryID, Err: err}
	}
	rec := &types.MemoryRecord{
		ID:        entryID,
		UserID:    userID,
		Date:      date,
		Text:      text,
		Embedding: vec,
		UpdatedAt: i.nowFunc().UTC(),
	}
	if err := i.index.Upsert(ctx, rec); err != nil {
		return &IndexError{EntryID: entryID, Err: err}
	}
	return nil
}

// Remove deletes the record for entryID; a missing record is not an error.
func (i *Indexer) Remove(ctx context.Context, entryID string) error {
	if err := i.index.Delete(ctx, entryID); err != nil {
		return &IndexError{EntryID: entryID, Err: err}
	}
	return nil
}
