// Package psh implements a perfect spatial hash: a compact, collision-free
// mapping from a sparse set of d-dimensional integer lattice points to
// associated values.
//
// The structure is built once from a frozen input set and answers Get in
// O(1) with reads of two tables and one occupancy bit: a small offset table
// φ perturbs a primary hash
// just enough to make it injective over the defined set, and each hash table
// slot carries a positional-hash tag that distinguishes the defined key
// occupying the slot from every other lattice point hashing to it. The
// combined footprint of the two tables is close to the raw payload size for
// realistic densities.
//
// Construction trades time for that compactness: it buckets the defined
// keys by offset table slot, then searches, largest bucket first, for
// per-bucket offsets that avoid collisions, retrying with a larger offset
// table when the search fails. See the paper by Lefebvre & Hoppe, "Perfect
// Spatial Hashing" (SIGGRAPH 2006), for the underlying algorithm.
//
// After construction the map is immutable except through Add, which places
// a new key only if its slot is compatible (and fails softly otherwise),
// and Rebuild, which constructs a fresh map from the union of the current
// entries and a batch of new ones. Get is safe for concurrent use; Add and
// Rebuild are not safe against concurrent readers or each other.
package psh

import (
	"math/rand/v2"
	"unsafe"

	"github.com/google/uuid"
)

// Map is a perfect spatial hash over a fixed set of d-dimensional lattice
// points. The type parameters select the coordinate width P, the
// positional-hash tag width H, and the payload type V.
type Map[P PosInt, H HashInt, V any] struct {
	d    int
	n    int
	mBar uint // hash table side
	m    uint // hash table slot count, mBar^d
	rBar uint // offset table side
	r    uint // offset table slot count, rBar^d

	m0, m1, m2 uint // hash primes

	ext    extents
	domain uint // lattice points in the domain box

	phi []P // offset table, flat, stride d
	tbl []entry[H, V]
	occ *Bitset // slot occupancy

	rng        *rand.Rand
	seeded     bool
	maxRetries int
	buildID    uuid.UUID
}

// phiAt returns offset table slot j as a point.
func (m *Map[P, H, V]) phiAt(j uint) Point[P] {
	d := uint(m.d)
	return Point[P](m.phi[j*d : (j+1)*d])
}

// slot returns the hash table index of p's composed hash
// h(p) = M0·p + φ[pointToIndex(M1·p, r̄, r)].
func (m *Map[P, H, V]) slot(p Point[P]) uint {
	j := scaledIndex(p, m.m1, m.rBar, m.r)
	return hashIndex(p, m.phiAt(j), m.m0, m.mBar, m.m)
}

// Len returns the number of defined keys.
func (m *Map[P, H, V]) Len() int { return m.n }

// Dim returns the dimension d.
func (m *Map[P, H, V]) Dim() int { return m.d }

// MBar returns the hash table side length m̄; the table holds m̄^d slots.
func (m *Map[P, H, V]) MBar() uint { return m.mBar }

// RBar returns the offset table side length r̄; the table holds r̄^d slots.
func (m *Map[P, H, V]) RBar() uint { return m.rBar }

// M returns the hash table slot count.
func (m *Map[P, H, V]) M() uint { return m.m }

// R returns the offset table slot count.
func (m *Map[P, H, V]) R() uint { return m.r }

// Primes returns the three hash primes M0, M1, M2 the map was built with.
// Informational only.
func (m *Map[P, H, V]) Primes() (m0, m1, m2 uint) { return m.m0, m.m1, m.m2 }

// BuildID returns the map's build id, for diagnostic correlation by an
// embedding application. It never enters the hash computation.
func (m *Map[P, H, V]) BuildID() uuid.UUID { return m.buildID }

// DomainSize returns the number of lattice points in the map's domain box,
// the size an occupancy hint Bitset for Rebuild must have.
func (m *Map[P, H, V]) DomainSize() uint { return m.domain }

// DomainIndex returns the rank of p within the domain box, the bit position
// an occupancy hint uses for p.
func (m *Map[P, H, V]) DomainIndex(p Point[P]) uint { return domainIndex(m.ext, p) }

// MemorySize returns the total bytes held by φ, H, the occupancy bitmap, the
// domain extents and the top-level struct.
func (m *Map[P, H, V]) MemorySize() int {
	var (
		c P
		e entry[H, V]
	)
	return int(unsafe.Sizeof(*m)) +
		len(m.phi)*int(unsafe.Sizeof(c)) +
		len(m.tbl)*int(unsafe.Sizeof(e)) +
		m.occ.memSize() +
		len(m.ext)*int(unsafe.Sizeof(uint(0)))
}
