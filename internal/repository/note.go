package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/easeaico/shadow/internal/types"
)

// quickNoteModel maps to the quick_notes table.
type quickNoteModel struct {
	ID            string `gorm:"primaryKey"`
	UserID        string
	Content       string
	Priority      string
	FinalPriority string
	Workspace     string
	Encrypted     bool `gorm:"column:is_encrypted"`
	UpdatedAt     time.Time
}

func (quickNoteModel) TableName() string {
	return "quick_notes"
}

// QuickNoteRepo accesses quick notes.
type QuickNoteRepo struct {
	db *gorm.DB
}

// NewQuickNoteRepo returns a QuickNoteRepo.
func NewQuickNoteRepo(db *gorm.DB) *QuickNoteRepo {
	return &QuickNoteRepo{db: db}
}

// Create inserts note, assigning an id when missing.
func (r *QuickNoteRepo) Create(ctx context.Context, note *types.QuickNote) error {
	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	if note.UpdatedAt.IsZero() {
		note.UpdatedAt = time.Now().UTC()
	}
	record := quickNoteToModel(note)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to insert quick note: %w", err)
	}
	return nil
}

// Get returns userID's note by id.
func (r *QuickNoteRepo) Get(ctx context.Context, userID, id string) (*types.QuickNote, error) {
	var record quickNoteModel
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Take(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to get quick note: %w", notFound(err))
	}
	note := quickNoteFromModel(record)
	return &note, nil
}

// Save overwrites every column of an existing note.
func (r *QuickNoteRepo) Save(ctx context.Context, note *types.QuickNote) error {
	record := quickNoteToModel(note)
	result := r.db.WithContext(ctx).Model(&quickNoteModel{}).
		Where("id = ? AND user_id = ?", note.ID, note.UserID).
		Select("content", "priority", "final_priority", "workspace", "is_encrypted", "updated_at").
		Updates(&record)
	if result.Error != nil {
		return fmt.Errorf("failed to update quick note: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes userID's note.
func (r *QuickNoteRepo) Delete(ctx context.Context, userID, id string) error {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&quickNoteModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete quick note: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns userID's notes, optionally restricted to one workspace, most recently updated first.
func (r *QuickNoteRepo) List(ctx context.Context, userID, workspace string) ([]types.QuickNote, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("updated_at DESC")
	if workspace != "" {
		query = query.Where("workspace = ?", workspace)
	}
	var records []quickNoteModel
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query quick notes: %w", err)
	}
	notes := make([]types.QuickNote, 0, len(records))
	for _, record := range records {
		notes = append(notes, quickNoteFromModel(record))
	}
	return notes, nil
}

// DeleteWorkspace removes every note of userID in workspace and reports how many went.
func (r *QuickNoteRepo) DeleteWorkspace(ctx context.Context, userID, workspace string) (int64, error) {
	result := r.db.WithContext(ctx).Where("user_id = ? AND workspace = ?", userID, workspace).Delete(&quickNoteModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete workspace: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func quickNoteToModel(note *types.QuickNote) quickNoteModel {
	return quickNoteModel{
		ID:            note.ID,
		UserID:        note.UserID,
		Content:       note.Content,
		Priority:      string(note.Priority),
		FinalPriority: string(note.FinalPriority),
		Workspace:     note.Workspace,
		Encrypted:     note.Encrypted,
		UpdatedAt:     note.UpdatedAt,
	}
}

func quickNoteFromModel(record quickNoteModel) types.QuickNote {
	return types.QuickNote{
		ID:            record.ID,
		UserID:        record.UserID,
		Content:       record.Content,
		Priority:      types.Priority(record.Priority),
		FinalPriority: types.Priority(record.FinalPriority),
		Workspace:     record.Workspace,
		Encrypted:     record.Encrypted,
		UpdatedAt:     record.UpdatedAt,
	}
}
