package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStreamType(t *testing.T) {
	cases := map[string]StreamType{
		"Idea":           StreamIdea,
		"IDEA":           StreamIdea,
		" rant ":         StreamRant,
		"Daily Recap":    StreamDailyRecap,
		"weekly_insight": StreamWeeklyInsight,
		"activity":       StreamActivity,
	}
	for input, want := range cases {
		got, err := ParseStreamType(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseStreamType("Reminder")
	assert.Error(t, err)
}

func TestUniqueTagsKeepsOrder(t *testing.T) {
	got := UniqueTags([]string{" work ", "ideas", "work", "", "ideas", "health"})
	assert.Equal(t, []string{"work", "ideas", "health"}, got)
}

func TestDateKeyUsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	ts := time.Date(2026, 1, 18, 3, 0, 0, 0, loc)
	assert.Equal(t, "2026-01-17", DateKey(ts))
}

func TestNormalizeEventType(t *testing.T) {
	assert.Equal(t, EventTypeWork, NormalizeEventType("work"))
	assert.Equal(t, EventTypePersonal, NormalizeEventType(""))
	assert.Equal(t, EventTypePersonal, NormalizeEventType("Holiday"))
}
