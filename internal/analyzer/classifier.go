// Package analyzer classifies journal text and quick-note priority through the generator.
package analyzer

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"github.com/easeaico/shadow/internal/models"
	"github.com/easeaico/shadow/internal/prompt"
	"github.com/easeaico/shadow/internal/types"
	"github.com/easeaico/shadow/internal/utils"
)

// Impact score bounds.
const (
	MinImpact = 1
	MaxImpact = 10
)

// Fallback is returned whenever classification cannot produce a usable result.
func Fallback() types.Classification {
	return types.Classification{
		StreamType:  types.StreamActivity,
		Summary:     "Legacy Entry",
		Tags:        []string{"Error"},
		ImpactScore: 5,
		Comment:     "My brain is offline, but I saved your note.",
	}
}

// Classifier assigns a structured classification to journal text.
type Classifier struct {
	model   model.LLM
	prompts *prompt.Builder
}

// NewClassifier returns a Classifier.
func NewClassifier(m model.LLM, prompts *prompt.Builder) *Classifier {
	if prompts == nil {
		prompts = prompt.NewBuilder(0)
	}
	return &Classifier{model: m, prompts: prompts}
}

type rawClassification struct {
	StreamType  string   `json:"stream_type"`
	Summary     string   `json:"summary"`
	Tags        []string `json:"tags"`
	ImpactScore float64  `json:"impact_score"`
	Comment     string   `json:"comment"`
}

// Classify never fails; any problem yields Fallback.
func (c *Classifier) Classify(ctx context.Context, text string) types.Classification {
	if c == nil || c.model == nil {
		slog.Warn("classifier not configured, using fallback")
		return Fallback()
	}
	if strings.TrimSpace(text) == "" {
		return Fallback()
	}

	system, err := c.prompts.Classifier()
	if err != nil {
		slog.Error("failed to build classifier prompt", "error", err.Error())
		return Fallback()
	}
	req := models.NewRequest(system, genai.NewContentFromText(text, genai.RoleUser))
	req.Config.ResponseMIMEType = "application/json"
	req.Config.ResponseSchema = classificationSchema()

	resp, err := models.Generate(ctx, c.model, req)
	if err != nil {
		slog.Error("failed to classify entry", "error", err.Error())
		return Fallback()
	}

	var raw rawClassification
	if err := utils.DecodeJSON(utils.ExtractContentText(resp.Content), &raw); err != nil {
		slog.Error("failed to decode classification", "error", err.Error())
		return Fallback()
	}
	streamType, err := types.ParseStreamType(raw.StreamType)
	if err != nil || !isClassifiable(streamType) {
		slog.Warn("classifier returned unsupported stream type", "stream_type", raw.StreamType)
		return Fallback()
	}

	return types.Classification{
		StreamType:  streamType,
		Summary:     strings.TrimSpace(raw.Summary),
		Tags:        types.UniqueTags(raw.Tags),
		ImpactScore: clampImpact(raw.ImpactScore),
		Comment:     strings.TrimSpace(raw.Comment),
	}
}

func isClassifiable(st types.StreamType) bool {
	for _, allowed := range types.ClassifiedStreamTypes {
		if st == allowed {
			return true
		}
	}
	return false
}

func clampImpact(score float64) int {
	rounded := int(math.Round(score))
	if rounded < MinImpact {
		return MinImpact
	}
	if rounded > MaxImpact {
		return MaxImpact
	}
	return rounded
}

func classificationSchema() *genai.Schema {
	streams := make([]string, len(types.ClassifiedStreamTypes))
	for i, st := range types.ClassifiedStreamTypes {
		streams[i] = string(st)
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"stream_type":  {Type: genai.TypeString, Enum: streams},
			"summary":      {Type: genai.TypeString},
			"tags":         {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"impact_score": {Type: genai.TypeInteger},
			"comment":      {Type: genai.TypeString},
		},
		Required: []string{"stream_type", "summary", "tags", "impact_score", "comment"},
	}
}
