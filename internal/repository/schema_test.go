package repository

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easeaico/shadow/internal/types"
)

func TestDecodeLegacyClassification(t *testing.T) {
	raw := json.RawMessage(`{"dashboard":"Professional","summary":"Fixed the build","sentiment_score":-0.4,"tags":["ci","ci","work"],"margin_note":"Breathe.","action_items":["retry"],"is_venting":true}`)

	c, err := decodeClassification(raw, SchemaV1)
	require.NoError(t, err)
	assert.Equal(t, types.Classification{
		StreamType:  types.StreamRant,
		Summary:     "Fixed the build",
		Tags:        []string{"ci", "work"},
		ImpactScore: 5,
		Comment:     "Breathe.",
	}, c)

	c, err = decodeClassification(json.RawMessage(`{"dashboard":"Personal","summary":"walk","is_venting":false}`), SchemaV1)
	require.NoError(t, err)
	assert.Equal(t, types.StreamActivity, c.StreamType)
}

func TestDecodeCurrentNormalizesStreamType(t *testing.T) {
	raw := json.RawMessage(`{"stream_type":"IDEA","summary":"s","tags":["a"],"impact_score":9,"comment":"c"}`)
	c, err := decodeClassification(raw, SchemaV2)
	require.NoError(t, err)
	assert.Equal(t, types.StreamIdea, c.StreamType)

	c, err = decodeClassification(json.RawMessage(`{"stream_type":"Daily Recap","summary":"## Day"}`), SchemaV2)
	require.NoError(t, err)
	assert.Equal(t, types.StreamDailyRecap, c.StreamType)
}

func TestDecodeUnknownVersionFails(t *testing.T) {
	_, err := decodeClassification(json.RawMessage(`{}`), 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported classification schema version 7")
}

func TestEntryModelStoresFilterColumns(t *testing.T) {
	created := time.Date(2026, 1, 18, 8, 0, 0, 0, time.UTC)
	entry := &types.Entry{
		ID:        "e1",
		UserID:    "alice",
		RawText:   "Standups are pointless",
		Kind:      types.EntryKindUser,
		CreatedAt: created,
		Classification: types.Classification{
			StreamType:  types.StreamRant,
			Summary:     "meetings",
			Tags:        []string{"work"},
			ImpactScore: 7,
			Comment:     "Heard.",
		},
	}

	record, err := entryToModel(entry)
	require.NoError(t, err)
	assert.Equal(t, "Rant", record.StreamType)
	assert.Equal(t, []string{"work"}, []string(record.Tags))
	assert.Equal(t, CurrentSchemaVersion, record.SchemaVersion)

	back, err := entryFromModel(record)
	require.NoError(t, err)
	assert.Equal(t, *entry, back)
}

func TestMigrationsAreOrderedAndEnablePgvector(t *testing.T) {
	migrations, err := Migrations()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)

	assert.Equal(t, "001_init.sql", migrations[0].Name)
	assert.Contains(t, migrations[0].SQL, "CREATE EXTENSION IF NOT EXISTS vector")
	assert.Contains(t, migrations[0].SQL, "vector(768)")
	for i := 1; i < len(migrations); i++ {
		assert.Less(t, migrations[i-1].Name, migrations[i].Name)
	}
}
