package events

import "time"

// Event types
const (
	AccountCreated       = "account.created"
	AccountStatusChanged = "account.status_changed"

	AccountStatusChangeRequested = "account.status_change_requested"
)

// Stream names
const (
	AccountEventsStream   = "account.events"
	AccountCommandsStream = "account.commands"
)

// Base event structure
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// Account events
type AccountCreatedEvent struct {
	AccountID string `json:"accountId"`
	TenantID  string `json:"tenantId"`
	OwnerID   string `json:"ownerId"`
	Status    string `json:"status"`
}

type AccountStatusChangedEvent struct {
	AccountID string `json:"accountId"`
	From      string `json:"from"`
	To        string `json:"to"`
	Reason    string `json:"reason,omitempty"`
}

// Account commands delivered over the commands stream
type AccountStatusChangeRequestedEvent struct {
	AccountID string `json:"accountId"`
	Status    string `json:"status"`
	Reason    string `json:"reason,omitempty"`
}
