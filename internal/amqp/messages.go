package amqp

import (
	"encoding/json"
	"time"
)

// Change actions carried by RecordChangeMessage.
const (
	ActionCreated  = "created"
	ActionUpdated  = "updated"
	ActionDeleted  = "deleted"
	ActionReseeded = "reseeded"
)

// RecordChangeMessage signals that the ledger changed. It carries only the
// record id and the action; the export worker re-reads the full book from
// the store, so a lost message is repaired by the next one or by the
// periodic export tick.
type RecordChangeMessage struct {
	ID        int64     `json:"id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

func NewRecordChangeMessage(id int64, action string) *RecordChangeMessage {
	return &RecordChangeMessage{
		ID:        id,
		Action:    action,
		Timestamp: time.Now(),
	}
}

func (m *RecordChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RecordChangeMessageFromJSON(data []byte) (*RecordChangeMessage, error) {
	var msg RecordChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
