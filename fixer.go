package psh

import (
	"sync"
	"sync/atomic"

	"github.com/db47h/psh/parallel"
)

// fixPositionalHashes establishes the non-membership guarantee: after it
// succeeds, every undefined lattice point in the domain either hashes to a
// vacant slot or fails the stored slot's tag comparison.
//
// Three ordered sweeps, each internally parallel:
//
//  1. mark slots whose tag an undefined point reproduces at k=1 (suspects);
//  2. gather, for every suspect slot, all domain points hashing to it —
//     defined or not, so the defining key itself is in the gathered set and
//     gets excluded by location inside fixK;
//  3. search, per suspect slot, for a rehash counter k whose tag no offender
//     reproduces.
//
// defined marks the domain cells holding keys; it is trusted as supplied so
// that New and Rebuild can hand in the bitmap they build from their input.
func (st *state[P, H, V]) fixPositionalHashes(defined *Bitset) bool {
	m := st.m
	n := int(m.domain)
	suspect := NewBitset(m.m)

	parallel.ForEach(n, func(i int) {
		if defined.Test(uint(i)) {
			return
		}
		q := domainPoint(m.ext, make(Point[P], m.d), uint(i))
		l := st.slot(q)
		if !st.occ.Test(l) {
			return
		}
		if st.hHat[l].hk == positionHash(q, m.m2, H(1)) {
			suspect.setAtomic(l)
		}
	})

	var mu sync.Mutex
	collisions := make(map[uint][]uint)
	parallel.ForEach(n, func(i int) {
		q := domainPoint(m.ext, make(Point[P], m.d), uint(i))
		l := st.slot(q)
		if !suspect.Test(l) {
			return
		}
		mu.Lock()
		collisions[l] = append(collisions[l], uint(i))
		mu.Unlock()
	})

	var failed atomic.Bool
	parallel.ForEachMap(collisions, func(l uint, offenders []uint) {
		if !st.fixK(l, offenders) {
			failed.Store(true)
		}
	})
	return !failed.Load()
}

// fixK advances slot l's rehash counter until its tag differs from the
// positional hash of every offender, or the counter space is exhausted.
func (st *state[P, H, V]) fixK(l uint, offenders []uint) bool {
	m := st.m
	e := &st.hHat[l]
	q := make(Point[P], m.d)
	for {
		e.k++
		if e.k == 0 {
			// wrapped: every k value collides with some offender
			return false
		}
		e.rehash(m.m2, e.k)
		ok := true
		for _, i := range offenders {
			domainPoint(m.ext, q, i)
			if !q.equal(e.location) && positionHash(q, m.m2, e.k) == e.hk {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
}
