// Package journal implements the entry, quick-note and event workflows.
package journal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/easeaico/shadow/internal/memory"
	"github.com/easeaico/shadow/internal/types"
)

// ErrEmptyText is returned when a note has no content.
var ErrEmptyText = errors.New("text cannot be empty")

// EntryStore persists journal entries.
type EntryStore interface {
	Create(ctx context.Context, entry *types.Entry) error
	Get(ctx context.Context, userID, id string) (*types.Entry, error)
	UpdateClassification(ctx context.Context, userID, id string, c types.Classification) error
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, userID string, filter types.EntryFilter) ([]types.Entry, error)
}

// Classifier assigns classifications; it never fails.
type Classifier interface {
	Classify(ctx context.Context, text string) types.Classification
}

// MemoryIndex writes and removes memory records.
type MemoryIndex interface {
	Index(ctx context.Context, entryID, text, userID, date string) error
	Remove(ctx context.Context, entryID string) error
}

// Service runs the entry workflow: classify, persist, gate, index.
type Service struct {
	entries    EntryStore
	classifier Classifier
	index      MemoryIndex
	nowFunc    func() time.Time
}

// NewService creates the entry workflow.
func NewService(entries EntryStore, classifier Classifier, index MemoryIndex) *Service {
	return &Service{
		entries:    entries,
		classifier: classifier,
		index:      index,
		nowFunc:    time.Now,
	}
}

// WithClock overrides the clock used for entry timestamps.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.nowFunc = now
	return s
}

// CreateEntry classifies text, applies an optional manual category, stores
// the entry once and indexes it when the memory gate admits it. Indexing is
// best effort: a failure is logged and the stored entry is still returned.
func (s *Service) CreateEntry(ctx context.Context, userID, text, override string) (*types.Entry, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("user id is required")
	}

	var manual types.StreamType
	if o := strings.TrimSpace(override); o != "" && !strings.EqualFold(o, "auto") {
		st, err := parseCategory(o)
		if err != nil {
			return nil, fmt.Errorf("invalid category override: %w", err)
		}
		manual = st
	}

	classification := s.classifier.Classify(ctx, text)
	if manual != "" {
		slog.Info("manual category override", "from", string(classification.StreamType), "to", string(manual))
		classification.StreamType = manual
	}

	entry := &types.Entry{
		UserID:         userID,
		RawText:        text,
		Kind:           types.EntryKindUser,
		Classification: classification,
		CreatedAt:      s.nowFunc().UTC(),
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	if memory.ShouldEmbed(entry.Classification) {
		s.indexEntry(ctx, entry)
	} else {
		slog.Debug("memory gate rejected entry", "entry_id", entry.ID, "stream_type", string(entry.Classification.StreamType), "impact", entry.Classification.ImpactScore)
	}
	return entry, nil
}

// OverrideCategory replaces an entry's stream type and re-applies the memory gate.
func (s *Service) OverrideCategory(ctx context.Context, userID, entryID, category string) (*types.Entry, error) {
	st, err := parseCategory(category)
	if err != nil {
		return nil, fmt.Errorf("invalid category: %w", err)
	}
	entry, err := s.entries.Get(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}

	entry.Classification.StreamType = st
	if err := s.entries.UpdateClassification(ctx, userID, entryID, entry.Classification); err != nil {
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}

	s.regate(ctx, entry)
	return entry, nil
}

// DeleteEntry removes the memory record before the entry so no record is left orphaned.
func (s *Service) DeleteEntry(ctx context.Context, userID, entryID string) error {
	if _, err := s.entries.Get(ctx, userID, entryID); err != nil {
		return err
	}
	if err := s.index.Remove(ctx, entryID); err != nil {
		return fmt.Errorf("failed to remove memory record: %w", err)
	}
	if err := s.entries.Delete(ctx, userID, entryID); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return nil
}

// ListEntries returns the user's entries newest first.
func (s *Service) ListEntries(ctx context.Context, userID string, filter types.EntryFilter) ([]types.Entry, error) {
	return s.entries.List(ctx, userID, filter)
}

// parseCategory accepts only the categories a user note may carry. The
// derived types belong to the insight generator.
func parseCategory(value string) (types.StreamType, error) {
	st, err := types.ParseStreamType(value)
	if err != nil {
		return "", err
	}
	if !slices.Contains(types.ClassifiedStreamTypes, st) {
		return "", fmt.Errorf("category %q is reserved for generated entries", string(st))
	}
	return st, nil
}

// regate indexes an admitted entry or removes the record of a rejected one.
func (s *Service) regate(ctx context.Context, entry *types.Entry) {
	if memory.ShouldEmbed(entry.Classification) {
		s.indexEntry(ctx, entry)
		return
	}
	if err := s.index.Remove(ctx, entry.ID); err != nil {
		slog.Error("failed to remove memory record", "entry_id", entry.ID, "error", err.Error())
	}
}

func (s *Service) indexEntry(ctx context.Context, entry *types.Entry) {
	if err := s.index.Index(ctx, entry.ID, entry.RawText, entry.UserID, types.DateKey(entry.CreatedAt)); err != nil {
		slog.Error("failed to index entry", "entry_id", entry.ID, "error", err.Error())
		return
	}
	slog.Info("entry saved to memory", "entry_id", entry.ID, "stream_type", string(entry.Classification.StreamType))
}
