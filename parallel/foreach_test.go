package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForEach(t *testing.T) {
	const n = 100000
	var sum atomic.Int64
	ForEach(n, func(i int) {
		sum.Add(int64(i))
	})
	assert.EqualValues(t, n*(n-1)/2, sum.Load())
}

func TestForEach_empty(t *testing.T) {
	called := false
	ForEach(0, func(int) { called = true })
	assert.False(t, called)
}

func TestForEachMap(t *testing.T) {
	m := map[int]int{1: 10, 2: 20, 3: 30, 4: 40}
	var keys, values atomic.Int64
	ForEachMap(m, func(k, v int) {
		keys.Add(int64(k))
		values.Add(int64(v))
	})
	require.EqualValues(t, 10, keys.Load())
	require.EqualValues(t, 100, values.Load())
}
