package amqp

import (
	"encoding/json"
	"time"
)

// Change operations carried by journal messages.
const (
	OpRecordCreated = "record_created"
	OpRecordUpdated = "record_updated"
	OpRecordDeleted = "record_deleted"
	OpStoreImported = "store_imported"
	OpStoreReset    = "store_reset"
)

// ChangeMessage describes one completed store mutation. It carries just
// enough for the journal worker; the snapshot remains the source of
// truth for record contents.
type ChangeMessage struct {
	Op          string    `json:"op"`
	RecordID    int64     `json:"record_id,omitempty"`
	RecordCount int       `json:"record_count"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewChangeMessage creates a change message stamped with the current time.
func NewChangeMessage(op string, recordID int64, recordCount int) *ChangeMessage {
	return &ChangeMessage{
		Op:          op,
		RecordID:    recordID,
		RecordCount: recordCount,
		Timestamp:   time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ChangeMessageFromJSON creates a message from JSON bytes.
func ChangeMessageFromJSON(data []byte) (*ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
