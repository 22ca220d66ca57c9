package psh

import (
	"fmt"

	"github.com/db47h/psh/parallel"
)

// bucket groups the defined keys sharing one offset table slot. phiIndex is
// the slot the bucket corresponds to; it survives the size sort.
type bucket[P PosInt, V any] struct {
	phiIndex uint
	items    []Item[P, V]
}

// buildBuckets partitions the input into r buckets keyed by
// pointToIndex(M1·p, r̄, r) and sorts them largest first. Ties are broken
// arbitrarily; any order among equal sizes works.
func (st *state[P, H, V]) buildBuckets(src Source[P, V], n int) []bucket[P, V] {
	m := st.m
	buckets := make([]bucket[P, V], m.r)
	for i := range buckets {
		buckets[i].phiIndex = uint(i)
	}
	for i := 0; i < n; i++ {
		p, v := src(i)
		j := scaledIndex(p, m.m1, m.rBar, m.r)
		// keep a copy: a Source is free to reuse its point buffer
		loc := make(Point[P], len(p))
		copy(loc, p)
		buckets[j].items = append(buckets[j].items, Item[P, V]{Location: loc, Value: v})
	}
	parallel.Sort(buckets, func(a, b bucket[P, V]) bool {
		return len(a.items) > len(b.items)
	})
	return buckets
}

// validateInput checks every input point once, before the sizing loop, and
// returns the domain-defined bitmap construction needs anyway.
func validateInput[P PosInt, V any](src Source[P, V], n, d int, ext extents) (*Bitset, error) {
	defined := NewBitset(ext.size())
	for i := 0; i < n; i++ {
		p, _ := src(i)
		if len(p) != d {
			return nil, fmt.Errorf("psh: input point %d has dimension %d, want %d", i, len(p), d)
		}
		if !domainContains(ext, p) {
			return nil, fmt.Errorf("psh: input point %d (%v) outside domain %v", i, p, ext)
		}
		j := domainIndex(ext, p)
		if defined.Test(j) {
			return nil, fmt.Errorf("psh: duplicate input point %v", p)
		}
		defined.Set(j)
	}
	return defined, nil
}
