package psh

import (
	"fmt"

	"github.com/google/uuid"
)

// Get returns the value stored for p and true, or the zero value and false
// when p is not in the defined set. It never fails otherwise and is safe for
// concurrent use.
func (m *Map[P, H, V]) Get(p Point[P]) (V, bool) {
	var zero V
	if len(p) != m.d {
		return zero, false
	}
	l := m.slot(p)
	if !m.occ.Test(l) {
		return zero, false
	}
	e := &m.tbl[l]
	if e.hk != positionHash(p, m.m2, e.k) {
		return zero, false
	}
	return e.value, true
}

// Add attempts to place (p, v) without rebuilding. It succeeds when p's slot
// already belongs to p (overwrite) or is vacant with a compatible tag;
// any other slot state returns false and the caller should queue the pair
// for a later Rebuild. Not safe against concurrent readers.
func (m *Map[P, H, V]) Add(p Point[P], v V) bool {
	if len(p) != m.d || !domainContains(m.ext, p) {
		return false
	}
	l := m.slot(p)
	e := &m.tbl[l]
	if e.hk != positionHash(p, m.m2, e.k) {
		// occupied by another key, or a vacancy whose tag would need
		// re-fixing against the rest of the domain
		return false
	}
	if !m.occ.Test(l) {
		m.occ.Set(l)
		m.n++
	}
	e.value = v
	return true
}

// Rebuild constructs a fresh map from the union of the current entries and
// the n new pairs supplied by src; new pairs win on overlap. hint, when
// non-nil and sized for the domain, marks the domain cells holding the
// current entries so Rebuild can enumerate them directly instead of
// scanning the whole domain; a current entry whose cell the hint leaves
// clear is not carried over. The positional-hash fixer always gets a
// defined-cell bitmap built from the merged key set, not the hint. The
// receiver's tables are left untouched; the new map shares and advances the
// receiver's random source.
func (m *Map[P, H, V]) Rebuild(src Source[P, V], n int, hint *Bitset) (*Map[P, H, V], error) {
	merged := make(map[uint]Item[P, V], m.n+n)
	collect := func(i uint) {
		p := domainPoint(m.ext, make(Point[P], m.d), i)
		if v, ok := m.Get(p); ok {
			merged[i] = Item[P, V]{Location: p, Value: v}
		}
	}
	if hint != nil && hint.Len() == m.domain {
		for i := uint(0); i < m.domain; i++ {
			if hint.Test(i) {
				collect(i)
			}
		}
	} else {
		for i := uint(0); i < m.domain; i++ {
			collect(i)
		}
	}
	for j := 0; j < n; j++ {
		p, v := src(j)
		if len(p) != m.d {
			return nil, fmt.Errorf("psh: rebuild point %d has dimension %d, want %d", j, len(p), m.d)
		}
		if !domainContains(m.ext, p) {
			return nil, fmt.Errorf("psh: rebuild point %d (%v) outside domain %v", j, p, m.ext)
		}
		merged[domainIndex(m.ext, p)] = Item[P, V]{Location: p, Value: v}
	}

	items := make([]Item[P, V], 0, len(merged))
	defined := NewBitset(m.domain)
	for i, it := range merged {
		items = append(items, it)
		defined.Set(i)
	}

	nm := &Map[P, H, V]{
		d:          m.d,
		ext:        m.ext,
		domain:     m.domain,
		rng:        m.rng,
		seeded:     m.seeded,
		maxRetries: m.maxRetries,
		buildID:    uuid.New(),
	}
	if err := nm.construct(ItemSource(items), len(items), defined); err != nil {
		return nil, err
	}
	return nm, nil
}
