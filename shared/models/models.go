package models

import (
	"errors"
	"strings"
	"time"
)

// ErrAccountNotFound is returned by account stores when no record exists for
// the requested id.
var ErrAccountNotFound = errors.New("account not found")

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "ACTIVE"
	AccountStatusSuspended AccountStatus = "SUSPENDED"
	AccountStatusClosed    AccountStatus = "CLOSED"
)

// ParseAccountStatus canonicalizes a status label. Labels are matched
// case-insensitively.
func ParseAccountStatus(value string) (AccountStatus, bool) {
	switch AccountStatus(strings.ToUpper(strings.TrimSpace(value))) {
	case AccountStatusActive:
		return AccountStatusActive, true
	case AccountStatusSuspended:
		return AccountStatusSuspended, true
	case AccountStatusClosed:
		return AccountStatusClosed, true
	default:
		return "", false
	}
}

// IsTerminal reports whether no transitions leave this status.
func (s AccountStatus) IsTerminal() bool {
	return s == AccountStatusClosed
}

type Account struct {
	ID               string        `json:"id"`
	TenantID         string        `json:"tenant_id"`
	OwnerID          string        `json:"owner_id"`
	Status           AccountStatus `json:"status"`
	SuspensionReason string        `json:"suspension_reason,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// Clone returns a copy that shares no state with a.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}
