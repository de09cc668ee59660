package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/easeaico/shadow/internal/types"
)

// ErrDefaultWorkspace is returned when deleting the Main workspace.
var ErrDefaultWorkspace = errors.New("the Main workspace cannot be deleted")

// QuickNoteStore persists quick notes.
type QuickNoteStore interface {
	Create(ctx context.Context, note *types.QuickNote) error
	Get(ctx context.Context, userID, id string) (*types.QuickNote, error)
	Save(ctx context.Context, note *types.QuickNote) error
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, userID, workspace string) ([]types.QuickNote, error)
	DeleteWorkspace(ctx context.Context, userID, workspace string) (int64, error)
}

// PriorityDetector labels note text; it never fails.
type PriorityDetector interface {
	DetectPriority(ctx context.Context, text string) types.Priority
}

// NewQuickNote is the input of CreateQuickNote.
type NewQuickNote struct {
	Content   string
	Priority  types.Priority
	Workspace string
	Encrypted bool
}

// Notes manages quick notes. Notes are never indexed into memory.
type Notes struct {
	store    QuickNoteStore
	detector PriorityDetector
	nowFunc  func() time.Time
}

// NewNotes creates the quick-note service.
func NewNotes(store QuickNoteStore, detector PriorityDetector) *Notes {
	return &Notes{store: store, detector: detector, nowFunc: time.Now}
}

// CreateQuickNote stores a note, resolving an Auto priority through the detector.
func (n *Notes) CreateQuickNote(ctx context.Context, userID string, in NewQuickNote) (*types.QuickNote, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, ErrEmptyText
	}
	requested, err := parsePriority(in.Priority)
	if err != nil {
		return nil, err
	}
	workspace := strings.TrimSpace(in.Workspace)
	if workspace == "" {
		workspace = types.DefaultWorkspace
	}

	note := &types.QuickNote{
		UserID:    userID,
		Content:   in.Content,
		Priority:  requested,
		Workspace: workspace,
		Encrypted: in.Encrypted,
		UpdatedAt: n.nowFunc().UTC(),
	}
	note.FinalPriority = n.resolve(ctx, note)
	if err := n.store.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to save quick note: %w", err)
	}
	return note, nil
}

// UpdateQuickNote applies the non-nil fields of upd. Changing the content of
// an Auto note, or switching it to Auto, runs detection again.
func (n *Notes) UpdateQuickNote(ctx context.Context, userID, id string, upd types.QuickNoteUpdate) (*types.QuickNote, error) {
	note, err := n.store.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	redetect := false
	if upd.Content != nil {
		if strings.TrimSpace(*upd.Content) == "" {
			return nil, ErrEmptyText
		}
		redetect = *upd.Content != note.Content
		note.Content = *upd.Content
	}
	if upd.Priority != nil {
		p, err := parsePriority(*upd.Priority)
		if err != nil {
			return nil, err
		}
		redetect = redetect || p != note.Priority
		note.Priority = p
	}
	if upd.Workspace != nil && strings.TrimSpace(*upd.Workspace) != "" {
		note.Workspace = strings.TrimSpace(*upd.Workspace)
	}
	if upd.Encrypted != nil {
		redetect = redetect || *upd.Encrypted != note.Encrypted
		note.Encrypted = *upd.Encrypted
	}
	if redetect || note.Priority != types.PriorityAuto {
		note.FinalPriority = n.resolve(ctx, note)
	}
	note.UpdatedAt = n.nowFunc().UTC()

	if err := n.store.Save(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to update quick note: %w", err)
	}
	return note, nil
}

// DeleteQuickNote removes a note.
func (n *Notes) DeleteQuickNote(ctx context.Context, userID, id string) error {
	return n.store.Delete(ctx, userID, id)
}

// ListQuickNotes lists notes, optionally within one workspace.
func (n *Notes) ListQuickNotes(ctx context.Context, userID, workspace string) ([]types.QuickNote, error) {
	return n.store.List(ctx, userID, strings.TrimSpace(workspace))
}

// DeleteWorkspace removes every note in a workspace other than Main.
func (n *Notes) DeleteWorkspace(ctx context.Context, userID, workspace string) (int64, error) {
	workspace = strings.TrimSpace(workspace)
	if workspace == "" || strings.EqualFold(workspace, types.DefaultWorkspace) {
		return 0, ErrDefaultWorkspace
	}
	return n.store.DeleteWorkspace(ctx, userID, workspace)
}

// resolve picks the final label. Encrypted content is never sent to the model.
func (n *Notes) resolve(ctx context.Context, note *types.QuickNote) types.Priority {
	if note.Priority != types.PriorityAuto {
		return note.Priority
	}
	if note.Encrypted || n.detector == nil {
		return types.PriorityMedium
	}
	return n.detector.DetectPriority(ctx, note.Content)
}

func parsePriority(p types.Priority) (types.Priority, error) {
	switch types.Priority(strings.TrimSpace(string(p))) {
	case "", types.PriorityAuto:
		return types.PriorityAuto, nil
	case types.PriorityHigh, types.PriorityMedium, types.PriorityLow:
		return types.Priority(strings.TrimSpace(string(p))), nil
	default:
		return "", fmt.Errorf("invalid priority %q", p)
	}
}
