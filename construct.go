package psh

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/db47h/psh/internal/seed"
)

// primes eligible as hash multipliers, drawn uniformly at construction time.
var primes = [...]uint{
	53, 97, 193, 389, 769, 1543, 3079, 6151, 12289,
	24593, 49157, 98317, 196613, 393241, 786433, 1572869, 3145739, 6291469,
}

// New constructs a perfect spatial hash over the n (point, value) pairs
// supplied by src. d is the dimension and width the side of the enclosing
// domain cube (override per axis with WithDomainExtents). Input points must
// be distinct and lie inside the domain.
//
// Construction retries with a growing offset table until the composed hash
// is injective over the input and the positional tags reject every other
// domain point; if the retry budget runs out it returns an error wrapping
// ErrConstructionFailed.
func New[P PosInt, H HashInt, V any](d int, src Source[P, V], n int, width uint, opts ...Option) (*Map[P, H, V], error) {
	o := getOpts(opts)
	if d < 1 {
		return nil, fmt.Errorf("psh: dimension must be at least 1, got %d", d)
	}
	if n < 0 {
		return nil, fmt.Errorf("psh: negative input size %d", n)
	}
	ext := o.extents
	if ext == nil {
		ext = uniformExtents(d, width)
	}
	if len(ext) != d {
		return nil, fmt.Errorf("psh: got %d domain extents for dimension %d", len(ext), d)
	}
	for i, w := range ext {
		if w < 1 {
			return nil, fmt.Errorf("psh: domain extent %d is empty", i)
		}
	}

	var hi, lo uint64
	if o.seeded {
		hi, lo = seed.Words(o.seed)
	} else {
		hi, lo = seed.Random()
	}
	m := &Map[P, H, V]{
		d:          d,
		ext:        ext,
		domain:     ext.size(),
		rng:        rand.New(rand.NewPCG(hi, lo)),
		seeded:     o.seeded,
		maxRetries: o.maxRetries,
		buildID:    o.buildID,
	}
	defined, err := validateInput(src, n, d, ext)
	if err != nil {
		return nil, err
	}
	if err := m.construct(src, n, defined); err != nil {
		return nil, err
	}
	return m, nil
}

// state holds the under-construction tables of a single sizing attempt.
// They replace the map's tables only when the attempt succeeds.
type state[P PosInt, H HashInt, V any] struct {
	m      *Map[P, H, V]
	phiHat []P
	hHat   []entryLarge[P, H, V]
	occ    *Bitset
}

// slot is the hash table index of p under the attempt's tables.
func (st *state[P, H, V]) slot(p Point[P]) uint {
	m := st.m
	j := scaledIndex(p, m.m1, m.rBar, m.r)
	d := uint(m.d)
	return hashIndex(p, Point[P](st.phiHat[j*d:(j+1)*d]), m.m0, m.mBar, m.m)
}

// construct runs the table-sizing loop: pick primes, size the hash table
// from n, then grow the offset table until an attempt succeeds or the retry
// budget is spent. defined marks the domain cells holding input keys.
func (m *Map[P, H, V]) construct(src Source[P, V], n int, defined *Bitset) error {
	m.n = n
	m.mBar = max(ceilRoot(uint(n), m.d), 1)
	m.m = ipow(m.mBar, m.d)

	m.m0 = m.prime()
	for m.m1 = m.prime(); m.m1 == m.m0; m.m1 = m.prime() {
	}
	m.m2 = m.prime()

	// the initial formula yields 0 for tiny n; clamp so the first increment
	// lands on a usable side length
	rBar := max(int(ceilRoot(uint(n/m.d), m.d))-1, m.d)

	for attempt := 0; attempt < m.maxRetries; attempt++ {
		rBar += m.d
		m.rBar = uint(rBar)
		m.r = ipow(m.rBar, m.d)
		if m.badMR() {
			continue
		}
		if m.attempt(src, n, defined) {
			return nil
		}
	}
	return fmt.Errorf("psh: %w after %d attempts (n=%d, m=%d, r̄=%d)",
		ErrConstructionFailed, m.maxRetries, n, m.m, m.rBar)
}

// badMR rejects side lengths whose ratio defeats the hash composition:
// m̄ mod r̄ must not be 1 or r̄−1, a cheap coprimality proxy.
func (m *Map[P, H, V]) badMR() bool {
	if m.mBar < 2 {
		// single-slot hash table, the ratio cannot matter
		return false
	}
	mod := m.mBar % m.rBar
	return mod == 1 || mod == m.rBar-1
}

// attempt runs one full construction pass at the current table sizes.
func (m *Map[P, H, V]) attempt(src Source[P, V], n int, defined *Bitset) bool {
	st := &state[P, H, V]{
		m:      m,
		phiHat: make([]P, m.r*uint(m.d)),
		hHat:   make([]entryLarge[P, H, V], m.m),
		occ:    NewBitset(m.m),
	}
	for i := range st.hHat {
		// default tag; any slot ever written is retagged via rehash
		st.hHat[i].k, st.hHat[i].hk = 1, 1
	}
	buckets := st.buildBuckets(src, n)
	for i := range buckets {
		if len(buckets[i].items) == 0 {
			// sorted largest first, the rest are empty too
			break
		}
		if !st.jiggle(&buckets[i]) {
			return false
		}
	}
	if !st.fixPositionalHashes(defined) {
		return false
	}

	m.phi = st.phiHat
	m.occ = st.occ
	m.tbl = make([]entry[H, V], m.m)
	for i := range st.hHat {
		m.tbl[i] = st.hHat[i].entry
	}
	return true
}

func (m *Map[P, H, V]) prime() uint {
	return primes[m.rng.IntN(len(primes))]
}

// ceilRoot returns ⌈x^(1/d)⌉, the smallest r with r^d ≥ x.
func ceilRoot(x uint, d int) uint {
	if x == 0 {
		return 0
	}
	r := uint(math.Ceil(math.Pow(float64(x), 1/float64(d))))
	for r > 1 && ipow(r-1, d) >= x {
		r--
	}
	for ipow(r, d) < x {
		r++
	}
	return r
}

func ipow(x uint, d int) uint {
	p := uint(1)
	for range d {
		p *= x
	}
	return p
}
