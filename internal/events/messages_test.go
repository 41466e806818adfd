package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kerhoff/BozorlikBot/internal/models"
)

func TestListCompletedMessageShape(t *testing.T) {
	record := &models.PurchaseRecord{
		ID:        "rec-1",
		Date:      "2024-05-01 18:30:05",
		TotalCost: 15000,
		Items: []models.RecordItem{
			{Product: "Лук", Quantity: "1 кг", Category: "🥕 Овощи", Price: 15000},
		},
	}

	body, err := NewListCompletedMessage("42", record).ToJSON()
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(body, &raw))
	assert.Equal(t, "list_completed", raw["type"])
	assert.Equal(t, "42", raw["user_id"])
	assert.Contains(t, raw, "timestamp")

	rec, ok := raw["record"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "rec-1", rec["id"])
	assert.Equal(t, float64(15000), rec["total_cost"])
}

func TestListCompletedMessageFromJSON(t *testing.T) {
	msg, err := ListCompletedMessageFromJSON([]byte(`{"type":"list_completed","user_id":"7","record":{"id":"x","date":"2024-01-02 03:04:05","total_cost":10,"items":[]}}`))
	require.NoError(t, err)
	assert.Equal(t, TypeListCompleted, msg.Type)
	assert.Equal(t, "7", msg.UserID)
	require.NotNil(t, msg.Record)
	assert.Equal(t, "x", msg.Record.ID)

	_, err = ListCompletedMessageFromJSON([]byte("{"))
	assert.Error(t, err)
}
