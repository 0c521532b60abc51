package utils

import "github.com/oklog/ulid/v2"

// NewAccountID generates a lexically sortable, unique account id (ULID).
// ulid.Make is safe for concurrent use and monotonic within a millisecond.
func NewAccountID() string {
	return ulid.Make().String()
}
