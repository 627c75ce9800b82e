package domain

import (
	"encoding/json"
	"time"
)

// Event types
const (
	EventTypeToppedUp    = "wallet.topped_up"
	EventTypePaid        = "wallet.paid"
	EventTypeTransferred = "wallet.transferred"
	EventTypeRegistered  = "account.registered"
)

// Aggregate types
const (
	AggregateTypeWallet  = "wallet"
	AggregateTypeAccount = "account"
)

// OutboxEvent represents an event written in the same transaction as
// the state change it describes, to be published asynchronously.
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// ToppedUpEvent payload
type ToppedUpEvent struct {
	RecordID     string `json:"record_id"`
	AccountRef   string `json:"account_ref"`
	Amount       string `json:"amount"`
	BalanceAfter string `json:"balance_after"`
}

// PaidEvent payload
type PaidEvent struct {
	RecordID     string `json:"record_id"`
	AccountRef   string `json:"account_ref"`
	Amount       string `json:"amount"`
	BalanceAfter string `json:"balance_after"`
}

// TransferredEvent payload
type TransferredEvent struct {
	RecordID  string `json:"record_id"`
	SenderRef string `json:"sender_ref"`
	TargetRef string `json:"target_ref"`
	Amount    string `json:"amount"`
}

// RegisteredEvent payload
type RegisteredEvent struct {
	AccountRef  string `json:"account_ref"`
	PhoneNumber string `json:"phone_number"`
}

// MarshalPayload converts an event payload struct to the generic map
// form stored in the outbox.
func MarshalPayload(v any) map[string]any {
	if v == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return map[string]any{"error": "failed to marshal payload"}
	}

	var result map[string]any
	if err := json.Unmarshal(data, &result); err != nil {
		return map[string]any{"error": "failed to unmarshal payload"}
	}

	return result
}
