package types

import "time"

// MemoryRecord is an admitted entry stored in the vector index.
// ID always equals the ID of the entry that produced it.
type MemoryRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Date      string    `json:"date"`
	Text      string    `json:"text"`
	Embedding []float32 `json:"-"` // embedding vectors, not serialized
	// Similarity is only populated on query results.
	Similarity float64   `json:"similarity"`
	UpdatedAt  time.Time `json:"updated_at"`
}
