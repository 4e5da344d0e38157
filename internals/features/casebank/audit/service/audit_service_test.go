package service

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldChangeSerialization(t *testing.T) {
	changes := []FieldChange{
		{Field: "case_status", Old: "draft", New: "published"},
		{Field: "case_difficulty", Old: nil, New: 3},
	}

	raw, err := sonic.Marshal(changes)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, sonic.Unmarshal(raw, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "case_status", decoded[0]["field"])
	assert.Equal(t, "draft", decoded[0]["old"])
	assert.Equal(t, "published", decoded[0]["new"])
	assert.Nil(t, decoded[1]["old"])
}

func TestBulkSummarySerialization(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New()}
	s := BulkSummary{
		IDs:   ids,
		Count: 2,
		Failed: []map[string]string{
			{"id": ids[1].String(), "reason": "no_questions"},
		},
	}

	raw, err := sonic.Marshal(s)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, sonic.Unmarshal(raw, &decoded))
	assert.EqualValues(t, 2, decoded["count"])
	assert.Len(t, decoded["ids"], 2)
	assert.NotNil(t, decoded["failed"])
}
