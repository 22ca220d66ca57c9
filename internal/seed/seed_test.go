package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWords_deterministic(t *testing.T) {
	h1, l1 := Words(42)
	h2, l2 := Words(42)
	require.Equal(t, h1, h2)
	require.Equal(t, l1, l2)

	h3, l3 := Words(43)
	assert.NotEqual(t, h1, h3)
	assert.NotEqual(t, l1, l3)
}

func TestRandom(t *testing.T) {
	hi, lo := Random()
	assert.False(t, hi == 0 && lo == 0)
	assert.NotEqual(t, hi, lo)
}
