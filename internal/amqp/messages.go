package amqp

import (
	"encoding/json"
	"time"
)

// TransactionIngestMessage carries one transaction to be created on behalf
// of an owner. Amount stays a decimal string so the worker runs the same
// parse and validation path as the HTTP create.
type TransactionIngestMessage struct {
	Owner       string    `json:"owner"`
	Date        string    `json:"date"`
	Amount      string    `json:"amount"`
	Category    string    `json:"category"`
	Status      string    `json:"status"`
	UserProfile string    `json:"user_profile,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewTransactionIngestMessage creates an ingest message stamped with the
// current time.
func NewTransactionIngestMessage(owner, date, amount, category, status string) *TransactionIngestMessage {
	return &TransactionIngestMessage{
		Owner:     owner,
		Date:      date,
		Amount:    amount,
		Category:  category,
		Status:    status,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *TransactionIngestMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TransactionIngestMessageFromJSON creates a message from JSON bytes
func TransactionIngestMessageFromJSON(data []byte) (*TransactionIngestMessage, error) {
	var msg TransactionIngestMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
