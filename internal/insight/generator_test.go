package insight

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easeaico/shadow/internal/models/modeltest"
	"github.com/easeaico/shadow/internal/types"
)

type fakeEntries struct {
	entries []types.Entry
}

func (f *fakeEntries) Create(ctx context.Context, entry *types.Entry) error {
	entry.ID = uuid.NewString()
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeEntries) List(ctx context.Context, userID string, filter types.EntryFilter) ([]types.Entry, error) {
	var out []types.Entry
	for _, e := range f.entries {
		if e.UserID != userID {
			continue
		}
		if filter.Kind != "" && e.Kind != filter.Kind {
			continue
		}
		if filter.StreamType != "" && e.Classification.StreamType != filter.StreamType {
			continue
		}
		if !filter.Since.IsZero() && e.CreatedAt.Before(filter.Since) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if filter.Ascending {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

type fakeCooldowns struct {
	days     map[string]string
	stampErr error
}

func (f *fakeCooldowns) LastDay(ctx context.Context, userID, kind string) (string, error) {
	return f.days[userID+"/"+kind], nil
}

func (f *fakeCooldowns) Stamp(ctx context.Context, userID, kind, day string) error {
	if f.stampErr != nil {
		return f.stampErr
	}
	f.days[userID+"/"+kind] = day
	return nil
}

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

func newTestGenerator(fake *modeltest.FakeLLM, entries *fakeEntries) (*Generator, *clock) {
	c := &clock{now: time.Date(2026, 1, 19, 18, 0, 0, 0, time.UTC)}
	g := NewGenerator(fake, nil, entries, &fakeCooldowns{days: map[string]string{}}, 10).WithClock(c.Now)
	return g, c
}

func userEntry(userID, text string, st types.StreamType, at time.Time) types.Entry {
	return types.Entry{
		ID:      uuid.NewString(),
		UserID:  userID,
		RawText: text,
		Kind:    types.EntryKindUser,
		Classification: types.Classification{
			StreamType:  st,
			ImpactScore: 7,
		},
		CreatedAt: at,
	}
}

const insightJSON = `{"insight_type":"Correlation","content":"You rant more on days you skip the gym.","related_topics":["gym","mood"]}`

func TestGenerateWeeklyCooldown(t *testing.T) {
	entries := &fakeEntries{entries: []types.Entry{
		userEntry("alice", "skipped gym, everything sucks", types.StreamRant, time.Date(2026, 1, 18, 9, 0, 0, 0, time.UTC)),
	}}
	fake := modeltest.NewText(insightJSON)
	g, c := newTestGenerator(fake, entries)
	ctx := context.Background()

	res, err := g.GenerateWeekly(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, res.Insight)
	assert.Equal(t, types.InsightCorrelation, res.Insight.Type)
	assert.Equal(t, types.StreamWeeklyInsight, res.Entry.Classification.StreamType)
	assert.Equal(t, types.EntryKindInsight, res.Entry.Kind)
	assert.Equal(t, []string{"Insight", "Correlation", "gym", "mood"}, res.Entry.Classification.Tags)

	_, err = g.GenerateWeekly(ctx, "alice")
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, 1, fake.Calls())

	c.now = c.now.Add(7 * time.Hour)
	_, err = g.GenerateWeekly(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 2, fake.Calls())
}

func TestGenerateWeeklyInsufficientData(t *testing.T) {
	fake := modeltest.NewText(insightJSON)
	entries := &fakeEntries{entries: []types.Entry{
		userEntry("bob", "bob's notes", types.StreamIdea, time.Date(2026, 1, 18, 9, 0, 0, 0, time.UTC)),
	}}
	g, _ := newTestGenerator(fake, entries)

	res, err := g.GenerateWeekly(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, res.Insufficient)
	assert.Zero(t, fake.Calls())

	// Insufficient data does not consume the day.
	entries.entries = append(entries.entries, userEntry("alice", "first note", types.StreamIdea, time.Date(2026, 1, 19, 9, 0, 0, 0, time.UTC)))
	_, err = g.GenerateWeekly(context.Background(), "alice")
	require.NoError(t, err)
}

func TestGenerateWeeklyHardFailure(t *testing.T) {
	entries := &fakeEntries{entries: []types.Entry{
		userEntry("alice", "note", types.StreamActivity, time.Date(2026, 1, 18, 9, 0, 0, 0, time.UTC)),
	}}
	cases := map[string]*modeltest.FakeLLM{
		"call error":   {Err: errors.New("boom")},
		"not json":     modeltest.NewText("You seem happy"),
		"unknown type": modeltest.NewText(`{"insight_type":"Prophecy","content":"x","related_topics":[]}`),
		"no content":   modeltest.NewText(`{"insight_type":"Pattern","content":"  ","related_topics":[]}`),
	}
	for name, fake := range cases {
		t.Run(name, func(t *testing.T) {
			g, _ := newTestGenerator(fake, entries)
			_, err := g.GenerateWeekly(context.Background(), "alice")
			assert.ErrorIs(t, err, ErrInsightFailed)

			// A failed generation leaves the day unstamped.
			last, _ := g.cooldowns.LastDay(context.Background(), "alice", KindWeekly)
			assert.Empty(t, last)
		})
	}
	assert.Len(t, entries.entries, 1)
}

func TestWeeklyTranscriptSkipsDerivedEntries(t *testing.T) {
	entries := &fakeEntries{entries: []types.Entry{
		userEntry("alice", "ran 5k", types.StreamActivity, time.Date(2026, 1, 17, 9, 0, 0, 0, time.UTC)),
		{UserID: "alice", RawText: "Daily Recap Generated", Kind: types.EntryKindRecap, Classification: types.Classification{StreamType: types.StreamDailyRecap}, CreatedAt: time.Date(2026, 1, 18, 9, 0, 0, 0, time.UTC)},
	}}
	fake := modeltest.NewText(insightJSON)
	g, _ := newTestGenerator(fake, entries)

	_, err := g.GenerateWeekly(context.Background(), "alice")
	require.NoError(t, err)
	system := fake.LastRequest().Config.SystemInstruction.Parts[0].Text
	assert.Contains(t, system, "- [Saturday] Activity: ran 5k (Impact: 7)")
	assert.NotContains(t, system, "Daily Recap Generated")
}

func TestDailyRecapIdempotent(t *testing.T) {
	entries := &fakeEntries{entries: []types.Entry{
		userEntry("alice", "shipped the release", types.StreamActivity, time.Date(2026, 1, 19, 9, 0, 0, 0, time.UTC)),
		userEntry("alice", "idea: plant app", types.StreamIdea, time.Date(2026, 1, 19, 15, 4, 0, 0, time.UTC)),
		userEntry("alice", "yesterday", types.StreamActivity, time.Date(2026, 1, 18, 9, 0, 0, 0, time.UTC)),
	}}
	fake := modeltest.NewText("## 📊 Daily Summary\nGood day.")
	g, _ := newTestGenerator(fake, entries)
	ctx := context.Background()

	first, err := g.DailyRecap(ctx, "alice")
	require.NoError(t, err)
	second, err := g.DailyRecap(ctx, "alice")
	require.NoError(t, err)

	assert.Equal(t, "## 📊 Daily Summary\nGood day.", first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, fake.Calls())

	log := fake.LastRequest().Contents[0].Parts[0].Text
	assert.Equal(t, "Here is the log:\n\n- [09:00 AM] (Activity): shipped the release\n- [03:04 PM] (Idea): idea: plant app\n", log)

	recaps, err := entries.List(ctx, "alice", types.EntryFilter{Kind: types.EntryKindRecap})
	require.NoError(t, err)
	require.Len(t, recaps, 1)
	assert.Equal(t, 10, recaps[0].Classification.ImpactScore)
	assert.Equal(t, []string{"Recap", "AI"}, recaps[0].Classification.Tags)
}

func TestDailyRecapNoActivity(t *testing.T) {
	fake := modeltest.NewText("unused")
	entries := &fakeEntries{}
	g, _ := newTestGenerator(fake, entries)

	got, err := g.DailyRecap(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, NoActivityMessage, got)
	assert.Zero(t, fake.Calls())
	assert.Empty(t, entries.entries)
}

func TestDailyRecapRateLimitedWithoutStoredRecap(t *testing.T) {
	entries := &fakeEntries{entries: []types.Entry{
		userEntry("alice", "note", types.StreamActivity, time.Date(2026, 1, 19, 9, 0, 0, 0, time.UTC)),
	}}
	g, _ := newTestGenerator(modeltest.NewText("recap"), entries)
	require.NoError(t, g.cooldowns.Stamp(context.Background(), "alice", KindDaily, "2026-01-19"))

	_, err := g.DailyRecap(context.Background(), "alice")
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestDailyRecapIgnoresUserEntryWithRecapType(t *testing.T) {
	entries := &fakeEntries{entries: []types.Entry{
		userEntry("alice", "shipped it", types.StreamDailyRecap, time.Date(2026, 1, 19, 9, 0, 0, 0, time.UTC)),
	}}
	entries.entries[0].Classification.Summary = "Release shipped"
	fake := modeltest.NewText("## real recap")
	g, _ := newTestGenerator(fake, entries)

	got, err := g.DailyRecap(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "## real recap", got)
	assert.Equal(t, 1, fake.Calls())
}

func TestStampFailureKeepsSavedResult(t *testing.T) {
	entries := &fakeEntries{entries: []types.Entry{
		userEntry("alice", "ran 5k", types.StreamActivity, time.Date(2026, 1, 19, 9, 0, 0, 0, time.UTC)),
	}}
	cooldowns := &fakeCooldowns{days: map[string]string{}, stampErr: errors.New("db down")}
	now := time.Date(2026, 1, 19, 18, 0, 0, 0, time.UTC)
	g := NewGenerator(modeltest.NewText(insightJSON), nil, entries, cooldowns, 10).WithClock(func() time.Time { return now })

	res, err := g.GenerateWeekly(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, res.Entry)

	g.model = modeltest.NewText("## recap")
	recap, err := g.DailyRecap(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "## recap", recap)
	assert.Len(t, entries.entries, 3)
}
