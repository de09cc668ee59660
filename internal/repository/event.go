package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/easeaico/shadow/internal/types"
)

// eventModel maps to the events table.
type eventModel struct {
	ID        string `gorm:"primaryKey"`
	UserID    string
	Title     string
	Date      string
	Time      string
	Type      string
	CreatedAt time.Time
}

func (eventModel) TableName() string {
	return "events"
}

// EventRepo accesses calendar events.
type EventRepo struct {
	db *gorm.DB
}

// NewEventRepo returns an EventRepo.
func NewEventRepo(db *gorm.DB) *EventRepo {
	return &EventRepo{db: db}
}

// Create inserts event, assigning an id and timestamp when missing.
func (r *EventRepo) Create(ctx context.Context, event *types.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	record := eventModel{
		ID:        event.ID,
		UserID:    event.UserID,
		Title:     event.Title,
		Date:      event.Date,
		Time:      event.Time,
		Type:      event.Type,
		CreatedAt: event.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// Upcoming lists userID's events dated on or after fromDate (YYYY-MM-DD), soonest first.
func (r *EventRepo) Upcoming(ctx context.Context, userID, fromDate string, limit int) ([]types.Event, error) {
	if limit <= 0 {
		limit = 20
	}
	var records []eventModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ?", userID, fromDate).
		Order("date ASC").Order("time ASC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	events := make([]types.Event, 0, len(records))
	for _, record := range records {
		events = append(events, types.Event{
			ID:        record.ID,
			UserID:    record.UserID,
			Title:     record.Title,
			Date:      record.Date,
			Time:      record.Time,
			Type:      record.Type,
			CreatedAt: record.CreatedAt,
		})
	}
	return events, nil
}

// Delete removes userID's event.
func (r *EventRepo) Delete(ctx context.Context, userID, id string) error {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&eventModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete event: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
