// Package insight produces the rate-limited weekly insight and daily recap.
package insight

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"github.com/easeaico/shadow/internal/models"
	"github.com/easeaico/shadow/internal/prompt"
	"github.com/easeaico/shadow/internal/types"
	"github.com/easeaico/shadow/internal/utils"
)

var (
	// ErrRateLimited means the user already generated this kind today (UTC).
	ErrRateLimited = errors.New("insight limit reached, try again tomorrow")
	// ErrInsightFailed means the generator produced nothing usable.
	ErrInsightFailed = errors.New("failed to generate insight")
)

// Cooldown kinds.
const (
	KindWeekly = "weekly_insight"
	KindDaily  = "daily_recap"
)

const (
	// DefaultHistorySize is how many recent entries feed the weekly insight.
	DefaultHistorySize = 10
	dailyLogLimit      = 100
)

// NoActivityMessage is the recap answer for a day without entries. It is not persisted.
const NoActivityMessage = "No activity logged yet today. Go do something! 🚀"

// EntryStore reads source entries and persists derived ones.
type EntryStore interface {
	Create(ctx context.Context, entry *types.Entry) error
	List(ctx context.Context, userID string, filter types.EntryFilter) ([]types.Entry, error)
}

// CooldownStore keeps the last generation day per user and kind.
type CooldownStore interface {
	LastDay(ctx context.Context, userID, kind string) (string, error)
	Stamp(ctx context.Context, userID, kind, day string) error
}

// WeeklyResult is the outcome of GenerateWeekly. Insufficient is set when
// the user has no entries yet; no generation happens in that case.
type WeeklyResult struct {
	Insight      *types.Insight
	Entry        *types.Entry
	Insufficient bool
}

// Generator builds insights from a user's entries.
type Generator struct {
	model       model.LLM
	prompts     *prompt.Builder
	entries     EntryStore
	cooldowns   CooldownStore
	historySize int
	nowFunc     func() time.Time
}

// NewGenerator creates a Generator.
func NewGenerator(m model.LLM, prompts *prompt.Builder, entries EntryStore, cooldowns CooldownStore, historySize int) *Generator {
	if prompts == nil {
		prompts = prompt.NewBuilder(0)
	}
	if historySize <= 0 {
		historySize = DefaultHistorySize
	}
	return &Generator{
		model:       m,
		prompts:     prompts,
		entries:     entries,
		cooldowns:   cooldowns,
		historySize: historySize,
		nowFunc:     time.Now,
	}
}

// WithClock overrides the clock that defines the UTC day.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.nowFunc = now
	return g
}

type rawInsight struct {
	InsightType   string   `json:"insight_type"`
	Content       string   `json:"content"`
	RelatedTopics []string `json:"related_topics"`
}

// GenerateWeekly finds one insight across the user's most recent entries.
func (g *Generator) GenerateWeekly(ctx context.Context, userID string) (WeeklyResult, error) {
	now := g.nowFunc().UTC()
	today := types.DateKey(now)
	if err := g.checkCooldown(ctx, userID, KindWeekly, today); err != nil {
		return WeeklyResult{}, err
	}

	recent, err := g.entries.List(ctx, userID, types.EntryFilter{Kind: types.EntryKindUser, Limit: g.historySize})
	if err != nil {
		return WeeklyResult{}, fmt.Errorf("failed to load recent entries: %w", err)
	}
	if len(recent) == 0 {
		return WeeklyResult{Insufficient: true}, nil
	}

	system, err := g.prompts.WeeklyInsight(prompt.WeeklyTranscript(recent))
	if err != nil {
		return WeeklyResult{}, err
	}
	req := models.NewRequest(system, genai.NewContentFromText("Find the insight in my week.", genai.RoleUser))
	req.Config.ResponseMIMEType = "application/json"
	req.Config.ResponseSchema = insightSchema()

	insight, err := g.weeklyInsight(ctx, req)
	if err != nil {
		slog.Error("failed to generate weekly insight", "user_id", userID, "error", err.Error())
		return WeeklyResult{}, fmt.Errorf("%w: %w", ErrInsightFailed, err)
	}

	tags := append([]string{"Insight", string(insight.Type)}, insight.RelatedTopics...)
	entry := &types.Entry{
		UserID:  userID,
		RawText: insight.Content,
		Kind:    types.EntryKindInsight,
		Classification: types.Classification{
			StreamType:  types.StreamWeeklyInsight,
			Summary:     "Weekly Pattern",
			Tags:        types.UniqueTags(tags),
			ImpactScore: 5,
			Comment:     "I noticed this pattern looking at your history. 🕵️",
		},
		CreatedAt: now,
	}
	if err := g.entries.Create(ctx, entry); err != nil {
		return WeeklyResult{}, fmt.Errorf("failed to save insight: %w", err)
	}
	g.stamp(ctx, userID, KindWeekly, today)

	slog.Info("weekly insight generated", "user_id", userID, "insight_type", insight.Type)
	return WeeklyResult{Insight: insight, Entry: entry}, nil
}

func (g *Generator) weeklyInsight(ctx context.Context, req *model.LLMRequest) (*types.Insight, error) {
	resp, err := models.Generate(ctx, g.model, req)
	if err != nil {
		return nil, err
	}
	var raw rawInsight
	if err := utils.DecodeJSON(utils.ExtractContentText(resp.Content), &raw); err != nil {
		return nil, err
	}
	insightType, ok := parseInsightType(raw.InsightType)
	if !ok {
		return nil, fmt.Errorf("unknown insight type %q", raw.InsightType)
	}
	content := strings.TrimSpace(raw.Content)
	if content == "" {
		return nil, fmt.Errorf("insight content is empty")
	}
	return &types.Insight{
		Type:          insightType,
		Content:       content,
		RelatedTopics: types.UniqueTags(raw.RelatedTopics),
	}, nil
}

// DailyRecap summarizes today's entries. A recap already saved today is
// returned as stored without another generation call.
func (g *Generator) DailyRecap(ctx context.Context, userID string) (string, error) {
	now := g.nowFunc().UTC()
	today := types.DateKey(now)
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	existing, err := g.entries.List(ctx, userID, types.EntryFilter{
		Kind:       types.EntryKindRecap,
		StreamType: types.StreamDailyRecap,
		Since:      startOfDay,
		Limit:      1,
	})
	if err != nil {
		return "", fmt.Errorf("failed to look up today's recap: %w", err)
	}
	if len(existing) > 0 {
		return existing[0].Classification.Summary, nil
	}

	if err := g.checkCooldown(ctx, userID, KindDaily, today); err != nil {
		return "", err
	}

	logs, err := g.entries.List(ctx, userID, types.EntryFilter{
		Kind:      types.EntryKindUser,
		Since:     startOfDay,
		Limit:     dailyLogLimit,
		Ascending: true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to load today's entries: %w", err)
	}
	if len(logs) == 0 {
		return NoActivityMessage, nil
	}

	req := models.NewRequest(g.prompts.DailyRecap(), genai.NewContentFromText(prompt.DailyLog(logs), genai.RoleUser))
	resp, err := models.Generate(ctx, g.model, req)
	if err != nil {
		slog.Error("failed to generate daily recap", "user_id", userID, "error", err.Error())
		return "", fmt.Errorf("%w: %w", ErrInsightFailed, err)
	}
	recap := strings.TrimSpace(utils.ExtractContentText(resp.Content))
	if recap == "" {
		return "", fmt.Errorf("%w: empty recap", ErrInsightFailed)
	}

	entry := &types.Entry{
		UserID:  userID,
		RawText: "Daily Recap Generated",
		Kind:    types.EntryKindRecap,
		Classification: types.Classification{
			StreamType:  types.StreamDailyRecap,
			Summary:     recap,
			Tags:        []string{"Recap", "AI"},
			ImpactScore: 10,
			Comment:     "Here is your daily summary.",
		},
		CreatedAt: now,
	}
	if err := g.entries.Create(ctx, entry); err != nil {
		return "", fmt.Errorf("failed to save daily recap: %w", err)
	}
	g.stamp(ctx, userID, KindDaily, today)
	return recap, nil
}

func (g *Generator) checkCooldown(ctx context.Context, userID, kind, today string) error {
	last, err := g.cooldowns.LastDay(ctx, userID, kind)
	if err != nil {
		return err
	}
	if last == today {
		return ErrRateLimited
	}
	return nil
}

// stamp records the generation day. The derived entry is already saved, so a
// failure here is logged and the result still returned.
func (g *Generator) stamp(ctx context.Context, userID, kind, today string) {
	if err := g.cooldowns.Stamp(ctx, userID, kind, today); err != nil {
		slog.Warn("failed to stamp insight cooldown", "user_id", userID, "kind", kind, "error", err.Error())
	}
}

func parseInsightType(value string) (types.InsightType, bool) {
	for _, t := range []types.InsightType{types.InsightPattern, types.InsightCorrelation, types.InsightSuggestion} {
		if strings.EqualFold(strings.TrimSpace(value), string(t)) {
			return t, true
		}
	}
	return "", false
}

func insightSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"insight_type": {
				Type: genai.TypeString,
				Enum: []string{string(types.InsightPattern), string(types.InsightCorrelation), string(types.InsightSuggestion)},
			},
			"content":        {Type: genai.TypeString},
			"related_topics": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		},
		Required: []string{"insight_type", "content", "related_topics"},
	}
}
