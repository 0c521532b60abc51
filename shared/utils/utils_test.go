package utils

import (
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"
)

func TestNewAccountIDIsUniqueULID(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	prev := ""
	for i := 0; i < 1000; i++ {
		id := NewAccountID()
		_, err := ulid.ParseStrict(id)
		require.NoError(t, err, "generated id %q must parse", id)

		_, dup := seen[id]
		require.False(t, dup, "duplicate id %q", id)
		seen[id] = struct{}{}

		require.Greater(t, id, prev, "ids must sort in generation order")
		prev = id
	}
}
