package memory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/easeaico/shadow/internal/types"
)

// ErrUserRequired is returned when retrieval is attempted without a user.
var ErrUserRequired = errors.New("user id is required for retrieval")

// DefaultTopK is used when callers pass k <= 0.
const DefaultTopK = 5

// Retriever runs user-scoped similarity search over the memory index.
type Retriever struct {
	embedder Embedder
	index    VectorIndex
	topK     int
}

// NewRetriever creates a new Retriever.
func NewRetriever(embedder Embedder, index VectorIndex, topK int) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Retriever{
		embedder: embedder,
		index:    index,
		topK:     topK,
	}
}

// Retrieve returns at most k of userID's memories ranked by similarity to query.
func (r *Retriever) Retrieve(ctx context.Context, userID, query string, k int) ([]types.MemoryRecord, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUserRequired
	}
	if strings.TrimSpace(query) == "" {
		return []types.MemoryRecord{}, nil
	}
	if r.embedder == nil || r.index == nil {
		return nil, fmt.Errorf("retriever not properly configured")
	}
	if k <= 0 {
		k = r.topK
	}

	vec, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, err
	}
	records, err := r.index.Query(ctx, userID, vec, k)
	if err != nil {
		return nil, fmt.Errorf("failed to query memory index: %w", err)
	}
	if records == nil {
		records = []types.MemoryRecord{}
	}
	return records, nil
}
