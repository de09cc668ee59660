package types

import (
	"fmt"
	"strings"
	"time"
)

// StreamType is the semantic category assigned to an entry.
type StreamType string

const (
	StreamActivity      StreamType = "Activity"
	StreamRant          StreamType = "Rant"
	StreamIdea          StreamType = "Idea"
	StreamDailyRecap    StreamType = "DailyRecap"
	StreamWeeklyInsight StreamType = "WeeklyInsight"
)

// ClassifiedStreamTypes are the categories the classifier may assign to user notes.
// DailyRecap and WeeklyInsight are only set by the insight generator.
var ClassifiedStreamTypes = []StreamType{StreamActivity, StreamRant, StreamIdea}

// ParseStreamType accepts any casing plus the spaced/underscored spellings
// older clients send ("IDEA", "Daily Recap", "weekly_insight").
func ParseStreamType(value string) (StreamType, error) {
	key := strings.ToLower(strings.TrimSpace(value))
	key = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(key)
	switch key {
	case "activity":
		return StreamActivity, nil
	case "rant":
		return StreamRant, nil
	case "idea":
		return StreamIdea, nil
	case "dailyrecap":
		return StreamDailyRecap, nil
	case "weeklyinsight":
		return StreamWeeklyInsight, nil
	default:
		return "", fmt.Errorf("unknown stream type %q", value)
	}
}

// EntryKind separates user-written entries from derived ones.
type EntryKind string

const (
	EntryKindUser    EntryKind = "user_note"
	EntryKindInsight EntryKind = "ai_insight"
	EntryKindRecap   EntryKind = "daily_recap"
)

// Classification is the structured analysis attached to an entry.
type Classification struct {
	StreamType  StreamType `json:"stream_type"`
	Summary     string     `json:"summary"`
	Tags        []string   `json:"tags"`
	ImpactScore int        `json:"impact_score"`
	Comment     string     `json:"comment"`
}

// Entry is one journal item.
type Entry struct {
	ID             string         `json:"id"`
	UserID         string         `json:"user_id"`
	RawText        string         `json:"raw_text"`
	Kind           EntryKind      `json:"kind"`
	Classification Classification `json:"classification"`
	CreatedAt      time.Time      `json:"created_at"`
}

// EntryFilter narrows entry listings.
type EntryFilter struct {
	StreamType StreamType
	Tag        string
	Kind       EntryKind
	Since      time.Time
	Limit      int
	Ascending  bool
}

// DateKey formats t as the UTC calendar day used in memory metadata and cooldowns.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// UniqueTags trims, drops empties and removes duplicates while keeping order.
func UniqueTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
