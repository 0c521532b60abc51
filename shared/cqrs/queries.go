package cqrs

// GetAccountQuery fetches a single account by id.
type GetAccountQuery struct {
	AccountID string
}
