package parallel

import (
	"runtime"
	"sort"
	"sync"
)

// below this length the goroutine overhead outweighs the split
const sortSerialCutoff = 1 << 12

// Sort sorts s according to less using a parallel merge sort. It is a drop-in
// replacement for sort.Slice for large slices; small slices are handed to
// sort.Slice directly. The sort is not stable.
func Sort[T any](s []T, less func(a, b T) bool) {
	depth := 0
	for w := runtime.GOMAXPROCS(0); w > 1; w >>= 1 {
		depth++
	}
	tmp := make([]T, len(s))
	mergeSort(s, tmp, less, depth)
}

func mergeSort[T any](s, tmp []T, less func(a, b T) bool, depth int) {
	if depth == 0 || len(s) < sortSerialCutoff {
		sort.Slice(s, func(i, j int) bool { return less(s[i], s[j]) })
		return
	}
	mid := len(s) / 2
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		mergeSort(s[:mid], tmp[:mid], less, depth-1)
	}()
	mergeSort(s[mid:], tmp[mid:], less, depth-1)
	wg.Wait()
	merge(s, tmp, mid, less)
}

func merge[T any](s, tmp []T, mid int, less func(a, b T) bool) {
	copy(tmp, s)
	i, j := 0, mid
	for k := range s {
		switch {
		case i >= mid:
			s[k] = tmp[j]
			j++
		case j >= len(s):
			s[k] = tmp[i]
			i++
		case less(tmp[j], tmp[i]):
			s[k] = tmp[j]
			j++
		default:
			s[k] = tmp[i]
			i++
		}
	}
}
