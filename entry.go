package psh

// entry is a finalized hash table slot: the user payload plus the
// positional-hash tag (k, hk) that disambiguates the defined key occupying
// the slot from every other lattice point hashing to it.
type entry[H HashInt, V any] struct {
	value V
	k     H
	hk    H
}

// entryLarge is the construction-time slot. It additionally carries the
// defined key's location so that the positional-hash fixer can recompute hk
// for successive values of k. It is discarded into a plain entry when the
// table is finalized.
type entryLarge[P PosInt, H HashInt, V any] struct {
	entry[H, V]
	location Point[P]
}

// rehash sets the slot's rehash counter to k and recomputes the tag from the
// stored location.
func (e *entryLarge[P, H, V]) rehash(m2 uint, k H) {
	e.k = k
	e.hk = positionHash[P, H](e.location, m2, k)
}

// positionHash computes (p · (k, k², …, k^d)) · M2 truncated to H. The dot
// product accumulates in uint64 and the final truncation supplies the
// modular reduction.
func positionHash[P PosInt, H HashInt](p Point[P], m2 uint, k H) H {
	var sum uint64
	kk, kp := uint64(k), uint64(1)
	for i := range p {
		kp *= kk
		sum += uint64(p[i]) * kp
	}
	return H(sum * uint64(m2))
}
