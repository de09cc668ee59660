package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/easeaico/shadow/internal/types"
)

// DefaultEntryLimit caps entry listings.
const DefaultEntryLimit = 50

// entryModel maps to the entries table.
type entryModel struct {
	ID      string `gorm:"primaryKey"`
	UserID  string
	RawText string
	Kind    string
	// StreamType and Tags duplicate the payload for filtering.
	StreamType     string
	Tags           pq.StringArray  `gorm:"type:text[]"`
	Classification json.RawMessage `gorm:"type:jsonb"`
	SchemaVersion  int
	CreatedAt      time.Time
}

func (entryModel) TableName() string {
	return "entries"
}

// EntryRepo accesses journal entries.
type EntryRepo struct {
	db *gorm.DB
}

// NewEntryRepo returns an EntryRepo.
func NewEntryRepo(db *gorm.DB) *EntryRepo {
	return &EntryRepo{db: db}
}

// Create inserts entry, assigning an id and timestamp when missing.
func (r *EntryRepo) Create(ctx context.Context, entry *types.Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if entry.Kind == "" {
		entry.Kind = types.EntryKindUser
	}
	record, err := entryToModel(entry)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}
	return nil
}

// Get returns userID's entry by id.
func (r *EntryRepo) Get(ctx context.Context, userID, id string) (*types.Entry, error) {
	var record entryModel
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Take(&record).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", notFound(err))
	}
	entry, err := entryFromModel(record)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateClassification replaces the classification of userID's entry in one statement.
func (r *EntryRepo) UpdateClassification(ctx context.Context, userID, id string, c types.Classification) error {
	payload, err := encodeClassification(c)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&entryModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{
			"classification": payload,
			"schema_version": CurrentSchemaVersion,
			"stream_type":    string(c.StreamType),
			"tags":           pq.StringArray(c.Tags),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes userID's entry.
func (r *EntryRepo) Delete(ctx context.Context, userID, id string) error {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&entryModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns userID's entries matching filter, newest first unless Ascending.
func (r *EntryRepo) List(ctx context.Context, userID string, filter types.EntryFilter) ([]types.Entry, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultEntryLimit
	}
	order := "created_at DESC"
	if filter.Ascending {
		order = "created_at ASC"
	}

	query := r.db.WithContext(ctx).Where("user_id = ?", userID).Order(order).Limit(limit)
	if filter.StreamType != "" {
		query = query.Where("stream_type = ?", string(filter.StreamType))
	}
	if tag := strings.TrimSpace(filter.Tag); tag != "" {
		query = query.Where("? = ANY(tags)", tag)
	}
	if filter.Kind != "" {
		query = query.Where("kind = ?", string(filter.Kind))
	}
	if !filter.Since.IsZero() {
		query = query.Where("created_at >= ?", filter.Since)
	}

	var records []entryModel
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}

	entries := make([]types.Entry, 0, len(records))
	for _, record := range records {
		entry, err := entryFromModel(record)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func entryToModel(entry *types.Entry) (entryModel, error) {
	payload, err := encodeClassification(entry.Classification)
	if err != nil {
		return entryModel{}, err
	}
	return entryModel{
		ID:             entry.ID,
		UserID:         entry.UserID,
		RawText:        entry.RawText,
		Kind:           string(entry.Kind),
		StreamType:     string(entry.Classification.StreamType),
		Tags:           pq.StringArray(entry.Classification.Tags),
		Classification: payload,
		SchemaVersion:  CurrentSchemaVersion,
		CreatedAt:      entry.CreatedAt,
	}, nil
}

func entryFromModel(record entryModel) (types.Entry, error) {
	classification, err := decodeClassification(record.Classification, record.SchemaVersion)
	if err != nil {
		return types.Entry{}, fmt.Errorf("entry %s: %w", record.ID, err)
	}
	return types.Entry{
		ID:             record.ID,
		UserID:         record.UserID,
		RawText:        record.RawText,
		Kind:           types.EntryKind(record.Kind),
		Classification: classification,
		CreatedAt:      record.CreatedAt,
	}, nil
}
