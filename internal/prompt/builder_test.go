package prompt

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easeaico/shadow/internal/types"
)

func fixedClock() time.Time {
	return time.Date(2026, 1, 19, 9, 30, 0, 0, time.UTC)
}

func TestDialogueIncludesDateProfileContextAndHistory(t *testing.T) {
	b := NewBuilder(2).WithClock(fixedClock)
	history := []types.ChatTurn{
		{Role: "user", Text: "first"},
		{Role: "model", Text: "second"},
		{Role: "user", Text: "third"},
	}

	out, err := b.Dialogue(DialogueContext{
		Context:   "- [2026-01-18] shipped the beta",
		History:   history,
		EventTool: "create_event_tool",
	})
	require.NoError(t, err)

	assert.Contains(t, out, "CURRENT DATE: Monday, 2026-01-19")
	assert.Contains(t, out, "USER PROFILE:\nStandard User")
	assert.Contains(t, out, "- [2026-01-18] shipped the beta")
	assert.Contains(t, out, "MODEL: second\nUSER: third")
	assert.NotContains(t, out, "USER: first")
	assert.Contains(t, out, "'create_event_tool'")
	assert.Contains(t, out, CoreMission)
}

func TestRenderProfile(t *testing.T) {
	out := RenderProfile(&types.UserProfile{
		Age:          31,
		Gender:       "F",
		Profession:   "Engineer",
		ShadowType:   "Career Mode",
		CurrentFocus: "launch",
	})
	assert.True(t, strings.HasPrefix(out, "User Name: User\n"))
	assert.Contains(t, out, "Age/Gender: 31, F")
	assert.Contains(t, out, "Act as a 'Career Mode'")
}

func TestClassifierListsStreams(t *testing.T) {
	out, err := NewBuilder(0).Classifier()
	require.NoError(t, err)
	assert.Contains(t, out, "Activity, Rant, Idea")
}

func TestPriorityEmbedsText(t *testing.T) {
	out, err := NewBuilder(0).Priority("Server is on fire")
	require.NoError(t, err)
	assert.Contains(t, out, `Analyze this text: "Server is on fire"`)
}

func TestWeeklyTranscript(t *testing.T) {
	entries := []types.Entry{
		{
			RawText:        "Refactored billing",
			CreatedAt:      time.Date(2026, 1, 16, 12, 0, 0, 0, time.UTC),
			Classification: types.Classification{StreamType: types.StreamActivity, ImpactScore: 4},
		},
		{
			RawText:        "Standups are pointless",
			CreatedAt:      time.Date(2026, 1, 17, 12, 0, 0, 0, time.UTC),
			Classification: types.Classification{StreamType: types.StreamRant, ImpactScore: 7},
		},
	}
	want := "- [Friday] Activity: Refactored billing (Impact: 4)\n- [Saturday] Rant: Standups are pointless (Impact: 7)"
	assert.Equal(t, want, WeeklyTranscript(entries))
}

func TestDailyLog(t *testing.T) {
	entries := []types.Entry{{
		RawText:   "gym",
		CreatedAt: time.Date(2026, 1, 16, 15, 4, 0, 0, time.UTC),
	}}
	assert.Equal(t, "Here is the log:\n\n- [03:04 PM] (Activity): gym\n", DailyLog(entries))
}
