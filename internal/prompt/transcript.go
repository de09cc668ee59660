package prompt

import (
	"fmt"
	"strings"

	"github.com/easeaico/shadow/internal/types"
)

// WeeklyTranscript renders entries as "- [Weekday] Category: text (Impact: n)" lines.
func WeeklyTranscript(entries []types.Entry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("- [%s] %s: %s (Impact: %d)",
			e.CreatedAt.UTC().Weekday(), e.Classification.StreamType, e.RawText, e.Classification.ImpactScore))
	}
	return strings.Join(lines, "\n")
}

// DailyLog renders today's entries for the recap, oldest first as given.
func DailyLog(entries []types.Entry) string {
	var sb strings.Builder
	sb.WriteString("Here is the log:\n\n")
	for _, e := range entries {
		streamType := e.Classification.StreamType
		if streamType == "" {
			streamType = types.StreamActivity
		}
		fmt.Fprintf(&sb, "- [%s] (%s): %s\n", e.CreatedAt.UTC().Format("03:04 PM"), streamType, e.RawText)
	}
	return sb.String()
}
