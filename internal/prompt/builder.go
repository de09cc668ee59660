// Package prompt renders the instructions sent to the generator.
package prompt

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/easeaico/shadow/internal/types"
)

// DialogueDateLayout renders the current date in dialogue prompts.
const DialogueDateLayout = "Monday, 2006-01-02"

const standardUser = "Standard User"

var funcs = template.FuncMap{
	"join": func(items []types.StreamType, sep string) string {
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = string(item)
		}
		return strings.Join(parts, sep)
	},
}

// DialogueContext contains the inputs of the dialogue system prompt.
type DialogueContext struct {
	Profile   *types.UserProfile
	Context   string
	History   []types.ChatTurn
	EventTool string
}

// Builder assembles instructions for every generator call.
type Builder struct {
	historyLimit int
	nowFunc      func() time.Time
}

// NewBuilder creates a prompt Builder keeping the last historyLimit chat turns.
func NewBuilder(historyLimit int) *Builder {
	if historyLimit <= 0 {
		historyLimit = 5
	}
	return &Builder{
		historyLimit: historyLimit,
		nowFunc:      time.Now,
	}
}

// WithClock overrides the clock used for the current date.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.nowFunc = now
	return b
}

// Classifier renders the classification instruction.
func (b *Builder) Classifier() (string, error) {
	data := struct{ StreamTypes []types.StreamType }{StreamTypes: types.ClassifiedStreamTypes}
	return execute(classifierTemplate, data)
}

// Priority renders the priority instruction for text.
func (b *Builder) Priority(text string) (string, error) {
	return execute(priorityTemplate, struct{ Text string }{Text: text})
}

// Dialogue renders the dialogue system prompt.
func (b *Builder) Dialogue(ctx DialogueContext) (string, error) {
	data := struct {
		Mission   string
		Now       string
		Profile   string
		Context   string
		History   string
		EventTool string
	}{
		Mission:   CoreMission,
		Now:       b.nowFunc().Format(DialogueDateLayout),
		Profile:   RenderProfile(ctx.Profile),
		Context:   ctx.Context,
		History:   RenderHistory(ctx.History, b.historyLimit),
		EventTool: ctx.EventTool,
	}
	return execute(dialogueTemplate, data)
}

// WeeklyInsight renders the weekly insight instruction around a transcript.
func (b *Builder) WeeklyInsight(transcript string) (string, error) {
	return execute(weeklyInsightTemplate, struct{ History string }{History: transcript})
}

// DailyRecap returns the daily recap instruction.
func (b *Builder) DailyRecap() string {
	return dailyRecapInstruction
}

// RenderProfile formats a profile for prompts; nil renders as a standard user.
func RenderProfile(p *types.UserProfile) string {
	if p == nil {
		return standardUser
	}
	name := p.Name
	if name == "" {
		name = "User"
	}
	return fmt.Sprintf("User Name: %s\nAge/Gender: %d, %s\nProfession: %s\nCurrent Focus (Week/Month): %s\nYOUR PERSONA: Act as a '%s'. Adjust your tone accordingly.",
		name, p.Age, p.Gender, p.Profession, p.CurrentFocus, p.ShadowType)
}

// RenderHistory formats the last n turns as "ROLE: text" lines.
func RenderHistory(turns []types.ChatTurn, n int) string {
	if n > 0 && len(turns) > n {
		turns = turns[len(turns)-n:]
	}
	lines := make([]string, 0, len(turns))
	for _, turn := range turns {
		lines = append(lines, fmt.Sprintf("%s: %s", strings.ToUpper(turn.Role), turn.Text))
	}
	return strings.Join(lines, "\n")
}

func execute(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to build %s prompt: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
