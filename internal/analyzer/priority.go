package analyzer

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"github.com/easeaico/shadow/internal/models"
	"github.com/easeaico/shadow/internal/prompt"
	"github.com/easeaico/shadow/internal/types"
	"github.com/easeaico/shadow/internal/utils"
)

// PriorityDetector labels quick notes High, Medium or Low.
type PriorityDetector struct {
	model   model.LLM
	prompts *prompt.Builder
}

// NewPriorityDetector returns a PriorityDetector.
func NewPriorityDetector(m model.LLM, prompts *prompt.Builder) *PriorityDetector {
	if prompts == nil {
		prompts = prompt.NewBuilder(0)
	}
	return &PriorityDetector{model: m, prompts: prompts}
}

// DetectPriority never fails; anything unusable resolves to Medium.
func (d *PriorityDetector) DetectPriority(ctx context.Context, text string) types.Priority {
	if d == nil || d.model == nil || strings.TrimSpace(text) == "" {
		return types.PriorityMedium
	}

	system, err := d.prompts.Priority(text)
	if err != nil {
		slog.Error("failed to build priority prompt", "error", err.Error())
		return types.PriorityMedium
	}
	resp, err := models.Generate(ctx, d.model, models.NewRequest(system, genai.NewContentFromText(text, genai.RoleUser)))
	if err != nil {
		slog.Error("failed to detect priority", "error", err.Error())
		return types.PriorityMedium
	}

	raw := utils.ExtractContentText(resp.Content)
	label := NormalizePriority(raw)
	if label == types.PriorityMedium && !strings.EqualFold(strings.TrimSpace(raw), "medium") {
		slog.Warn("priority detector returned unexpected label, defaulting to Medium", "raw", raw)
	}
	return label
}

// NormalizePriority trims, strips periods and title-cases raw; only exact
// High, Medium or Low survive, everything else is Medium.
func NormalizePriority(raw string) types.Priority {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ".", "")
	switch p := types.Priority(cases.Title(language.Und).String(cleaned)); p {
	case types.PriorityHigh, types.PriorityMedium, types.PriorityLow:
		return p
	default:
		return types.PriorityMedium
	}
}
