package psh

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/db47h/psh/parallel"
)

// jiggle searches for an offset for bucket b such that no element of b lands
// on an occupied hash table slot, then inserts the bucket. The m candidate
// offsets are probed from a random start, wrapping around the table: chunk
// starts are dispatched serially in ascending order and scanned by parallel
// workers until one finds a valid offset or the shared found flag is set.
// Any valid offset suffices, so a later success in another chunk is simply
// discarded.
func (st *state[P, H, V]) jiggle(b *bucket[P, V]) bool {
	m := st.m
	start := uint(m.rng.IntN(int(m.m)))

	workers := runtime.GOMAXPROCS(0)
	chunk := m.m/uint(workers) + 1

	var (
		mu     sync.Mutex
		found  atomic.Bool
		offset = make(Point[P], m.d)
	)

	next := uint(0)
	produce := func() (uint, bool) {
		if found.Load() || next >= m.m {
			return 0, false
		}
		c := next
		next += chunk
		return c, true
	}
	consume := func(c uint) {
		cand := make(Point[P], m.d)
		slots := make([]uint, 0, len(b.items))
		for i := c; i < c+chunk && i < m.m; i++ {
			if found.Load() {
				return
			}
			indexToPoint(cand, (start+i+1)%m.m, m.mBar)
			if st.collides(b, cand, &slots) {
				continue
			}
			mu.Lock()
			if !found.Load() {
				copy(offset, cand)
				found.Store(true)
			}
			mu.Unlock()
			return
		}
	}
	parallel.Pipeline(workers, produce, consume)

	if !found.Load() {
		return false
	}
	copy(st.phiHat[b.phiIndex*uint(m.d):], offset)
	st.insert(b, offset)
	return true
}

// collides reports whether placing b under the candidate offset hits an
// occupied slot or maps two of b's own elements to the same slot. slots is a
// worker-local scratch buffer.
func (st *state[P, H, V]) collides(b *bucket[P, V], off Point[P], slots *[]uint) bool {
	m := st.m
	s := (*slots)[:0]
	defer func() { *slots = s }()
	for _, it := range b.items {
		l := hashIndex(it.Location, off, m.m0, m.mBar, m.m)
		if st.occ.Test(l) {
			return true
		}
		for _, prev := range s {
			if prev == l {
				return true
			}
		}
		s = append(s, l)
	}
	return false
}

// insert writes every element of b into the hash table under the accepted
// offset and marks the slots occupied.
func (st *state[P, H, V]) insert(b *bucket[P, V], off Point[P]) {
	m := st.m
	for _, it := range b.items {
		l := hashIndex(it.Location, off, m.m0, m.mBar, m.m)
		e := &st.hHat[l]
		e.value = it.Value
		e.location = it.Location
		e.rehash(m.m2, 1)
		st.occ.Set(l)
	}
}
