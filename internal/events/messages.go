package events

import (
	"encoding/json"
	"time"

	"github.com/Kerhoff/BozorlikBot/internal/models"
)

// TypeListCompleted is sent after a completed list was archived.
const TypeListCompleted = "list_completed"

// ListCompletedMessage carries the archived record of a completed list.
type ListCompletedMessage struct {
	Type      string                 `json:"type"`
	UserID    string                 `json:"user_id"`
	Record    *models.PurchaseRecord `json:"record"`
	Timestamp time.Time              `json:"timestamp"`
}

// NewListCompletedMessage creates a list_completed message stamped with the current time.
func NewListCompletedMessage(userID string, record *models.PurchaseRecord) *ListCompletedMessage {
	return &ListCompletedMessage{
		Type:      TypeListCompleted,
		UserID:    userID,
		Record:    record,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ListCompletedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ListCompletedMessageFromJSON decodes a message produced by ToJSON.
func ListCompletedMessageFromJSON(data []byte) (*ListCompletedMessage, error) {
	var msg ListCompletedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
