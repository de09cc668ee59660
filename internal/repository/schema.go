package repository

import (
	"encoding/json"
	"fmt"

	"github.com/easeaico/shadow/internal/types"
)

// Classification payload versions stored in entries.schema_version.
const (
	// SchemaV1 is the dashboard/sentiment shape written by the first journal release.
	SchemaV1 = 1
	// SchemaV2 is the stream-type shape used today.
	SchemaV2 = 2

	CurrentSchemaVersion = SchemaV2
)

// legacyClassification is the v1 payload.
type legacyClassification struct {
	Dashboard      string   `json:"dashboard"`
	Summary        string   `json:"summary"`
	SentimentScore float64  `json:"sentiment_score"`
	Tags           []string `json:"tags"`
	MarginNote     string   `json:"margin_note"`
	ActionItems    []string `json:"action_items"`
	IsVenting      bool     `json:"is_venting"`
}

// legacyImpact is assigned to v1 rows, which carried no impact score.
const legacyImpact = 5

func encodeClassification(c types.Classification) (json.RawMessage, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode classification: %w", err)
	}
	return raw, nil
}

// decodeClassification upgrades a stored payload of any known version to the current shape.
func decodeClassification(raw json.RawMessage, version int) (types.Classification, error) {
	switch version {
	case SchemaV1:
		return decodeLegacyClassification(raw)
	case SchemaV2:
		var c types.Classification
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &c); err != nil {
				return types.Classification{}, fmt.Errorf("failed to decode classification: %w", err)
			}
		}
		if st, err := types.ParseStreamType(string(c.StreamType)); err == nil {
			c.StreamType = st
		}
		c.Tags = types.UniqueTags(c.Tags)
		return c, nil
	default:
		return types.Classification{}, fmt.Errorf("unsupported classification schema version %d", version)
	}
}

func decodeLegacyClassification(raw json.RawMessage) (types.Classification, error) {
	var legacy legacyClassification
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &legacy); err != nil {
			return types.Classification{}, fmt.Errorf("failed to decode legacy classification: %w", err)
		}
	}
	streamType := types.StreamActivity
	if legacy.IsVenting {
		streamType = types.StreamRant
	}
	return types.Classification{
		StreamType:  streamType,
		Summary:     legacy.Summary,
		Tags:        types.UniqueTags(legacy.Tags),
		ImpactScore: legacyImpact,
		Comment:     legacy.MarginNote,
	}, nil
}
