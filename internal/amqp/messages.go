package amqp

import (
	"encoding/json"
	"time"

	"spendlog/internal/core"
)

// RecordAppendedMessage announces a record admitted to the ledger. It is a
// notification only; the ledger never reads it back.
type RecordAppendedMessage struct {
	ID          int         `json:"id"`
	OccurredAt  time.Time   `json:"occurred_at"`
	Category    string      `json:"category"`
	Product     string      `json:"product"`
	GameItem    string      `json:"game_item,omitempty"`
	PaymentMode string      `json:"payment_mode"`
	Amount      core.Amount `json:"amount"`
	Description string      `json:"description"`
	PublishedAt time.Time   `json:"published_at"`
}

// NewRecordAppendedMessage builds the event for r.
func NewRecordAppendedMessage(r core.Record) *RecordAppendedMessage {
	return &RecordAppendedMessage{
		ID:          r.ID,
		OccurredAt:  r.Timestamp,
		Category:    string(r.Category),
		Product:     r.Product,
		GameItem:    r.GameItem,
		PaymentMode: string(r.PaymentMode),
		Amount:      r.Amount,
		Description: r.Description,
		PublishedAt: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *RecordAppendedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RecordAppendedMessageFromJSON decodes a message body.
func RecordAppendedMessageFromJSON(data []byte) (*RecordAppendedMessage, error) {
	var msg RecordAppendedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
