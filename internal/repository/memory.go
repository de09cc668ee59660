package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/easeaico/shadow/internal/types"
)

// memoryRecordModel maps to the memory_records table.
type memoryRecordModel struct {
	ID        string `gorm:"primaryKey"`
	UserID    string
	Date      string
	Text      string
	Embedding pgvector.Vector `gorm:"type:vector(768)"`
	UpdatedAt time.Time
}

func (memoryRecordModel) TableName() string {
	return "memory_records"
}

// scoredMemory is a Query result row.
type scoredMemory struct {
	ID         string
	UserID     string
	Date       string
	Text       string
	UpdatedAt  time.Time
	Similarity float64
}

// MemoryRepo is the pgvector-backed memory index.
type MemoryRepo struct {
	db *gorm.DB
}

// NewMemoryRepo returns a MemoryRepo.
func NewMemoryRepo(db *gorm.DB) *MemoryRepo {
	return &MemoryRepo{db: db}
}

// Upsert writes rec, replacing any record with the same id.
func (r *MemoryRepo) Upsert(ctx context.Context, rec *types.MemoryRecord) error {
	if len(rec.Embedding) == 0 {
		return fmt.Errorf("memory record %s has no embedding", rec.ID)
	}
	record := memoryRecordModel{
		ID:        rec.ID,
		UserID:    rec.UserID,
		Date:      rec.Date,
		Text:      rec.Text,
		Embedding: pgvector.NewVector(rec.Embedding),
		UpdatedAt: rec.UpdatedAt,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to upsert memory record: %w", err)
	}
	return nil
}

// Delete removes the record with id; a missing record is not an error.
func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&memoryRecordModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete memory record: %w", err)
	}
	return nil
}

// Query returns userID's k nearest records by cosine distance.
// The user filter is part of the SQL so other users' rows are never read.
func (r *MemoryRepo) Query(ctx context.Context, userID string, vector []float32, k int) ([]types.MemoryRecord, error) {
	if len(vector) == 0 || k <= 0 {
		return []types.MemoryRecord{}, nil
	}
	vec := pgvector.NewVector(vector)

	var rows []scoredMemory
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, user_id, date, text, updated_at, 1 - (embedding <=> ?) AS similarity
		FROM memory_records
		WHERE user_id = ?
		ORDER BY embedding <=> ?, id
		LIMIT ?`, vec, userID, vec, k).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search memory records: %w", err)
	}

	records := make([]types.MemoryRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, types.MemoryRecord{
			ID:         row.ID,
			UserID:     row.UserID,
			Date:       row.Date,
			Text:       row.Text,
			Similarity: row.Similarity,
			UpdatedAt:  row.UpdatedAt,
		})
	}
	return records, nil
}

// DeleteOrphans removes memory records whose entry no longer exists.
func (r *MemoryRepo) DeleteOrphans(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Exec(`
		DELETE FROM memory_records m
		WHERE NOT EXISTS (SELECT 1 FROM entries e WHERE e.id = m.id AND e.user_id = m.user_id)`)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete orphaned memory records: %w", result.Error)
	}
	return result.RowsAffected, nil
}
