// Package parallel provides the three concurrency primitives the psh
// construction algorithm needs: a parallel sort, a parallel for-each, and a
// pipeline with a serial producer feeding parallel consumers.
//
// These are fan-out/fan-in helpers built on goroutines, sync.WaitGroup and
// channels; they are not a general-purpose scheduler. Worker counts default
// to GOMAXPROCS.
package parallel

import (
	"runtime"
	"sync"
)

// ForEach calls fn for every i in [0, n), distributing contiguous chunks of
// the range over GOMAXPROCS goroutines. It returns when all calls have
// completed. fn must be safe for concurrent invocation on distinct indices.
func ForEach(n int, fn func(i int)) {
	workers := runtime.GOMAXPROCS(0)
	if n < 2 || workers < 2 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				fn(i)
			}
		}(lo, hi)
	}
	wg.Wait()
}

// ForEachMap calls fn for every key-value pair in m, distributing pairs over
// GOMAXPROCS goroutines. fn must be safe for concurrent invocation on
// distinct keys.
func ForEachMap[K comparable, V any](m map[K]V, fn func(k K, v V)) {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	ForEach(len(keys), func(i int) {
		fn(keys[i], m[keys[i]])
	})
}
