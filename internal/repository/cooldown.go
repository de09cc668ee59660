package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// cooldownModel maps to the insight_cooldowns table, one row per user and insight kind.
type cooldownModel struct {
	UserID    string `gorm:"primaryKey"`
	Kind      string `gorm:"primaryKey"`
	LastDay   string
	UpdatedAt time.Time
}

func (cooldownModel) TableName() string {
	return "insight_cooldowns"
}

// CooldownRepo tracks the last UTC day an insight kind was generated for a user.
type CooldownRepo struct {
	db *gorm.DB
}

// NewCooldownRepo returns a CooldownRepo.
func NewCooldownRepo(db *gorm.DB) *CooldownRepo {
	return &CooldownRepo{db: db}
}

// LastDay returns the stamped day (YYYY-MM-DD) or "" when never stamped.
func (r *CooldownRepo) LastDay(ctx context.Context, userID, kind string) (string, error) {
	var record cooldownModel
	err := r.db.WithContext(ctx).Where("user_id = ? AND kind = ?", userID, kind).Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get cooldown: %w", err)
	}
	return record.LastDay, nil
}

// Stamp records day as the last generation day.
func (r *CooldownRepo) Stamp(ctx context.Context, userID, kind, day string) error {
	record := cooldownModel{UserID: userID, Kind: kind, LastDay: day, UpdatedAt: time.Now().UTC()}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "kind"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_day", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to stamp cooldown: %w", err)
	}
	return nil
}
