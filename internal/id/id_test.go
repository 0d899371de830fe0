package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_PrefixAndUniqueness(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		got, err := Generate("col")
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(got, "col-"))
		assert.Len(t, got, len("col-")+21)
		_, dup := seen[got]
		require.False(t, dup, "duplicate id %s", got)
		seen[got] = struct{}{}
	}
}
