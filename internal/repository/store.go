// Package repository persists journal data in PostgreSQL through gorm.
package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrNotFound is returned when a record does not exist or belongs to another user.
var ErrNotFound = errors.New("record not found")

// Store holds the DB pool and repositories.
type Store struct {
	db         *gorm.DB
	Entries    *EntryRepo
	Memories   *MemoryRepo
	QuickNotes *QuickNoteRepo
	Events     *EventRepo
	Profiles   *ProfileRepo
	Cooldowns  *CooldownRepo
}

// NewStore initializes the PostgreSQL pool and repositories.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return NewStoreFromDB(db), nil
}

// NewStoreFromDB wires repositories around an existing connection.
func NewStoreFromDB(db *gorm.DB) *Store {
	return &Store{
		db:         db,
		Entries:    NewEntryRepo(db),
		Memories:   NewMemoryRepo(db),
		QuickNotes: NewQuickNoteRepo(db),
		Events:     NewEventRepo(db),
		Profiles:   NewProfileRepo(db),
		Cooldowns:  NewCooldownRepo(db),
	}
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

// Ping checks the connection and reports whether the pgvector extension is installed.
func (s *Store) Ping(ctx context.Context) (bool, error) {
	sqlDB, err := s.db.DB()
	if err != nil {
		return false, fmt.Errorf("failed to get sql db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return false, fmt.Errorf("failed to ping database: %w", err)
	}
	var hasVector bool
	if err := s.db.WithContext(ctx).Raw("SELECT EXISTS(SELECT 1 FROM pg_extension WHERE extname = 'vector')").Scan(&hasVector).Error; err != nil {
		return false, fmt.Errorf("failed to check pgvector extension: %w", err)
	}
	return hasVector, nil
}

func (s *Store) Close() {
	if s.db == nil {
		return
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return
	}
	_ = sqlDB.Close()
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
