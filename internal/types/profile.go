package types

// UserProfile is the persona data rendered into prompts.
type UserProfile struct {
	UserID       string `json:"user_id"`
	Name         string `json:"name"`
	Age          int    `json:"age"`
	Gender       string `json:"gender"`
	Profession   string `json:"profession"`
	ShadowType   string `json:"shadow_type"`
	CurrentFocus string `json:"current_focus"`
}

// ChatTurn is one message of the client-held conversation history.
type ChatTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// InsightType is the discrete kind of weekly insight.
type InsightType string

const (
	InsightPattern     InsightType = "Pattern"
	InsightCorrelation InsightType = "Correlation"
	InsightSuggestion  InsightType = "Suggestion"
)

// Insight is the structured output of the weekly insight generator.
type Insight struct {
	Type          InsightType `json:"insight_type"`
	Content       string      `json:"content"`
	RelatedTopics []string    `json:"related_topics"`
}
