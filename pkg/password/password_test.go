package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		pw, err := Generate(8)
		require.NoError(t, err)
		assert.Len(t, pw, 8)
		for _, r := range pw {
			assert.True(t, strings.ContainsRune(Alphabet, r), "unexpected rune %q", r)
		}
		seen[pw] = true
	}
	assert.Greater(t, len(seen), 45)
}

func TestGenerate_RejectsBadLength(t *testing.T) {
	_, err := Generate(0)
	assert.Error(t, err)
}
