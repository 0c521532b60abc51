package cqrs

// CreateAccountCommand carries the caller-supplied fields of a new account.
// AccountID must be empty; it is forwarded only so the service can reject it.
type CreateAccountCommand struct {
	AccountID string
	TenantID  string
	OwnerID   string
}

// UpdateAccountStatusCommand requests a lifecycle transition.
type UpdateAccountStatusCommand struct {
	AccountID string
	Status    string
	Reason    string
}
