package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateConsumerKey(t *testing.T) {
	key, err := GenerateConsumerKey()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key, "vb_"))
	// "vb_" + 32 random bytes hex encoded
	assert.Len(t, key, 3+64)
}

func TestGenerateConsumerKeyUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		key, err := GenerateConsumerKey()
		require.NoError(t, err)
		assert.False(t, seen[key], "duplicate key generated")
		seen[key] = true
	}
}
