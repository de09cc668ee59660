package analyzer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"github.com/easeaico/shadow/internal/models/modeltest"
	"github.com/easeaico/shadow/internal/types"
)

func TestClassifyParsesStructuredOutput(t *testing.T) {
	fake := modeltest.NewText("```json\n{\"stream_type\":\"IDEA\",\"summary\":\" App for plants \",\"tags\":[\"garden\",\"app\",\"garden\"],\"impact_score\":8,\"comment\":\"Love it\"}\n```")
	c := NewClassifier(fake, nil)

	got := c.Classify(context.Background(), "An app that waters my plants")

	assert.Equal(t, types.Classification{
		StreamType:  types.StreamIdea,
		Summary:     "App for plants",
		Tags:        []string{"garden", "app"},
		ImpactScore: 8,
		Comment:     "Love it",
	}, got)

	req := fake.LastRequest()
	require.NotNil(t, req)
	assert.Equal(t, "application/json", req.Config.ResponseMIMEType)
	require.NotNil(t, req.Config.ResponseSchema)
	assert.Equal(t, []string{"Activity", "Rant", "Idea"}, req.Config.ResponseSchema.Properties["stream_type"].Enum)
	require.NotNil(t, req.Config.SystemInstruction)
}

func TestClassifyClampsImpact(t *testing.T) {
	c := NewClassifier(modeltest.NewText(`{"stream_type":"Rant","summary":"s","tags":[],"impact_score":42,"comment":"c"}`), nil)
	assert.Equal(t, MaxImpact, c.Classify(context.Background(), "ugh").ImpactScore)

	c = NewClassifier(modeltest.NewText(`{"stream_type":"Rant","summary":"s","tags":[],"impact_score":-3,"comment":"c"}`), nil)
	assert.Equal(t, MinImpact, c.Classify(context.Background(), "ugh").ImpactScore)
}

func TestClassifyFallsBack(t *testing.T) {
	cases := map[string]*modeltest.FakeLLM{
		"call error":     {Err: errors.New("timeout")},
		"malformed json": modeltest.NewText("I think this is an idea"),
		"unknown stream": modeltest.NewText(`{"stream_type":"Poem","summary":"s","tags":[],"impact_score":3,"comment":"c"}`),
		"derived stream": modeltest.NewText(`{"stream_type":"WeeklyInsight","summary":"s","tags":[],"impact_score":3,"comment":"c"}`),
		"empty content":  modeltest.NewText(""),
	}
	for name, fake := range cases {
		t.Run(name, func(t *testing.T) {
			got := NewClassifier(fake, nil).Classify(context.Background(), "went for a run")
			assert.Equal(t, Fallback(), got)
		})
	}
}

func TestClassifyEmptyTextSkipsModel(t *testing.T) {
	fake := modeltest.NewText(`{"stream_type":"Idea"}`)
	got := NewClassifier(fake, nil).Classify(context.Background(), "   \n")
	assert.Equal(t, Fallback(), got)
	assert.Equal(t, 0, fake.Calls())
}

func TestFallbackIsExact(t *testing.T) {
	fb := Fallback()
	assert.Equal(t, types.StreamActivity, fb.StreamType)
	assert.Equal(t, "Legacy Entry", fb.Summary)
	assert.Equal(t, []string{"Error"}, fb.Tags)
	assert.Equal(t, 5, fb.ImpactScore)
	assert.Equal(t, "My brain is offline, but I saved your note.", fb.Comment)
}

func TestClassifyIgnoresThoughtParts(t *testing.T) {
	fake := &modeltest.FakeLLM{}
	fake.Push(&model.LLMResponse{Content: &genai.Content{
		Role: string(genai.RoleModel),
		Parts: []*genai.Part{
			{Text: `{"stream_type":"Rant"`, Thought: true},
			{Text: `{"stream_type":"Activity","summary":"ran","tags":["run"],"impact_score":3,"comment":"nice"}`},
		},
	}})
	got := NewClassifier(fake, nil).Classify(context.Background(), "ran 5k")
	assert.Equal(t, types.StreamActivity, got.StreamType)
}
