package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/easeaico/shadow/internal/types"
)

// profileModel maps to the user_profiles table.
type profileModel struct {
	UserID       string `gorm:"primaryKey"`
	Name         string
	Age          int
	Gender       string
	Profession   string
	ShadowType   string
	CurrentFocus string
	UpdatedAt    time.Time
}

func (profileModel) TableName() string {
	return "user_profiles"
}

// ProfileRepo accesses user profiles.
type ProfileRepo struct {
	db *gorm.DB
}

// NewProfileRepo returns a ProfileRepo.
func NewProfileRepo(db *gorm.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

// Get returns the profile of userID or ErrNotFound.
func (r *ProfileRepo) Get(ctx context.Context, userID string) (*types.UserProfile, error) {
	var record profileModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Take(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", notFound(err))
	}
	return &types.UserProfile{
		UserID:       record.UserID,
		Name:         record.Name,
		Age:          record.Age,
		Gender:       record.Gender,
		Profession:   record.Profession,
		ShadowType:   record.ShadowType,
		CurrentFocus: record.CurrentFocus,
	}, nil
}

// Upsert creates or replaces a profile.
func (r *ProfileRepo) Upsert(ctx context.Context, p *types.UserProfile) error {
	record := profileModel{
		UserID:       p.UserID,
		Name:         p.Name,
		Age:          p.Age,
		Gender:       p.Gender,
		Profession:   p.Profession,
		ShadowType:   p.ShadowType,
		CurrentFocus: p.CurrentFocus,
		UpdatedAt:    time.Now().UTC(),
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}
