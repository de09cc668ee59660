// Package dialogue answers chat questions grounded in the user's memories.
package dialogue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"github.com/easeaico/shadow/internal/memory"
	"github.com/easeaico/shadow/internal/models"
	"github.com/easeaico/shadow/internal/prompt"
	"github.com/easeaico/shadow/internal/repository"
	"github.com/easeaico/shadow/internal/tool"
	"github.com/easeaico/shadow/internal/types"
	"github.com/easeaico/shadow/internal/utils"
)

// Fixed replies.
const (
	ApologyMessage       = "My brain encountered an error. Please try again."
	ClarificationMessage = "I can schedule that, but I still need the %s. Could you tell me?"
)

// Retriever finds user-scoped memories for a question.
type Retriever interface {
	Retrieve(ctx context.Context, userID, query string, k int) ([]types.MemoryRecord, error)
}

// EventStore persists events created from chat.
type EventStore interface {
	Create(ctx context.Context, event *types.Event) error
}

// ProfileStore loads the persona rendered into the prompt.
type ProfileStore interface {
	Get(ctx context.Context, userID string) (*types.UserProfile, error)
}

// Request is one chat turn.
type Request struct {
	UserID   string
	Question string
	// Image is an optional base64 data URL.
	Image   string
	History []types.ChatTurn
}

// Responder runs the retrieve then generate flow for a chat turn.
type Responder struct {
	model     model.LLM
	prompts   *prompt.Builder
	retriever Retriever
	events    EventStore
	profiles  ProfileStore
	topK      int
}

// NewResponder creates a Responder. profiles may be nil; without events a
// scheduling request is answered with the apology.
func NewResponder(m model.LLM, prompts *prompt.Builder, retriever Retriever, events EventStore, profiles ProfileStore) *Responder {
	if prompts == nil {
		prompts = prompt.NewBuilder(0)
	}
	return &Responder{
		model:     m,
		prompts:   prompts,
		retriever: retriever,
		events:    events,
		profiles:  profiles,
		topK:      memory.DefaultTopK,
	}
}

// WithTopK sets how many memories ground each answer.
func (r *Responder) WithTopK(k int) *Responder {
	if k > 0 {
		r.topK = k
	}
	return r
}

// Respond always returns a user-visible string.
func (r *Responder) Respond(ctx context.Context, req Request) string {
	memoryContext := r.retrieve(ctx, req)

	action, err := r.generate(ctx, req, memoryContext)
	if err != nil {
		slog.Error("failed to generate chat answer", "user_id", req.UserID, "error", err.Error())
		return ApologyMessage
	}

	switch a := action.(type) {
	case Answer:
		return a.Text
	case ScheduleEvent:
		return r.schedule(ctx, req.UserID, a)
	default:
		slog.Error("unknown dialogue action", "action", fmt.Sprintf("%T", action))
		return ApologyMessage
	}
}

func (r *Responder) retrieve(ctx context.Context, req Request) string {
	if r.retriever == nil {
		return ""
	}
	records, err := r.retriever.Retrieve(ctx, req.UserID, req.Question, r.topK)
	if err != nil {
		slog.Warn("failed to retrieve memories, answering without context", "user_id", req.UserID, "error", err.Error())
		return ""
	}
	return memory.Assemble(records)
}

func (r *Responder) generate(ctx context.Context, req Request, memoryContext string) (Action, error) {
	system, err := r.prompts.Dialogue(prompt.DialogueContext{
		Profile:   r.profile(ctx, req.UserID),
		Context:   memoryContext,
		History:   req.History,
		EventTool: tool.CreateEventToolName,
	})
	if err != nil {
		return nil, err
	}

	llmReq := models.NewRequest(system, userContent(req))
	llmReq.Config.Tools = tool.Tools()

	resp, err := models.Generate(ctx, r.model, llmReq)
	if err != nil {
		return nil, err
	}
	return decodeAction(resp.Content)
}

func (r *Responder) schedule(ctx context.Context, userID string, a ScheduleEvent) string {
	if missing := a.Missing(); len(missing) > 0 {
		return fmt.Sprintf(ClarificationMessage, strings.Join(missing, " and "))
	}
	if r.events == nil {
		slog.Error("event store not configured, cannot schedule from chat", "user_id", userID)
		return ApologyMessage
	}
	event := &types.Event{
		UserID: userID,
		Title:  a.Title,
		Date:   a.Date,
		Time:   a.Time,
		Type:   a.Type,
	}
	if err := r.events.Create(ctx, event); err != nil {
		slog.Error("failed to save event from chat", "user_id", userID, "error", err.Error())
		return ApologyMessage
	}
	slog.Info("event scheduled from chat", "user_id", userID, "event_id", event.ID)
	return fmt.Sprintf("✅ I've scheduled '%s' for %s at %s.", a.Title, a.Date, a.Time)
}

func (r *Responder) profile(ctx context.Context, userID string) *types.UserProfile {
	if r.profiles == nil {
		return nil
	}
	p, err := r.profiles.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			slog.Warn("failed to load user profile", "user_id", userID, "error", err.Error())
		}
		return nil
	}
	return p
}

// userContent carries the question, plus the image on the vision path.
func userContent(req Request) *genai.Content {
	parts := []*genai.Part{genai.NewPartFromText(req.Question)}
	if req.Image != "" {
		mimeType, data, err := utils.DecodeDataURL(req.Image)
		if err != nil {
			slog.Warn("ignoring unreadable chat image", "error", err.Error())
		} else {
			parts = append(parts, genai.NewPartFromBytes(data, mimeType))
		}
	}
	return genai.NewContentFromParts(parts, genai.RoleUser)
}
