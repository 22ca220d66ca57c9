package psh

// PosInt is the set of unsigned integer types usable as lattice point
// coordinates. Coordinate arithmetic wraps modulo the type width; the hash
// composition relies on this wrapping for mixing, so signed or saturating
// types are deliberately excluded.
type PosInt interface {
	~uint8 | ~uint16 | ~uint32
}

// HashInt is the set of unsigned integer types usable as positional-hash
// tags. A wider HashInt lowers the probability that the positional-hash
// fixer runs out of rehash counters, at the cost of a larger per-slot
// footprint.
type HashInt interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Point is a d-dimensional lattice point. Its length is the dimension of the
// map it belongs to.
type Point[P PosInt] []P

// Pt is a convenience constructor for point literals.
func Pt[P PosInt](coords ...P) Point[P] {
	return Point[P](coords)
}

func (p Point[P]) equal(q Point[P]) bool {
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// pointToIndex maps p to a flat index within a cube of side width, reduced
// modulo max. Index layout is low-digit first: index = Σ widthⁱ·p[i].
// The accumulator is a full-width uint so that the sum cannot be truncated
// before the final reduction.
func pointToIndex[P PosInt](p Point[P], width, max uint) uint {
	switch len(p) {
	case 2:
		return (uint(p[0]) + width*uint(p[1])) % max
	case 3:
		return (uint(p[0]) + width*(uint(p[1])+width*uint(p[2]))) % max
	}
	index, w := uint(0), uint(1)
	for i := range p {
		index += w * uint(p[i])
		w *= width
	}
	return index % max
}

// indexToPoint is the inverse of pointToIndex for points inside the cube of
// side width. The result is written into dst, which must have the target
// dimension.
func indexToPoint[P PosInt](dst Point[P], index, width uint) Point[P] {
	switch len(dst) {
	case 2:
		dst[0], dst[1] = P(index%width), P(index/width%width)
		return dst
	case 3:
		dst[0], dst[1], dst[2] = P(index%width), P(index/width%width), P(index/(width*width)%width)
		return dst
	}
	for i := range dst {
		dst[i] = P(index % width)
		index /= width
	}
	return dst
}

// scaledIndex computes pointToIndex(factor·p, width, max) without
// materializing the scaled point. The per-component product wraps in P
// before widening, exactly as a componentwise scalar multiplication would.
func scaledIndex[P PosInt](p Point[P], factor, width, max uint) uint {
	index, w := uint(0), uint(1)
	for i := range p {
		index += w * uint(P(uint(p[i])*factor))
		w *= width
	}
	return index % max
}

// hashIndex computes pointToIndex(m0·p + off, width, max), the slot index of
// the composed hash for p under offset off. As in scaledIndex, the
// per-component arithmetic wraps in P first.
func hashIndex[P PosInt](p, off Point[P], m0, width, max uint) uint {
	index, w := uint(0), uint(1)
	for i := range p {
		index += w * uint(P(uint(p[i])*m0)+off[i])
		w *= width
	}
	return index % max
}

// extents describes the domain box, one axis length per dimension.
type extents []uint

func uniformExtents(d int, width uint) extents {
	e := make(extents, d)
	for i := range e {
		e[i] = width
	}
	return e
}

// size returns the number of lattice points in the box.
func (e extents) size() uint {
	n := uint(1)
	for _, w := range e {
		n *= w
	}
	return n
}

// domainIndex maps an in-domain point to its mixed-radix rank. Unlike
// pointToIndex this is exact, not modular: it is only called on points whose
// coordinates are within the box.
func domainIndex[P PosInt](e extents, p Point[P]) uint {
	index, w := uint(0), uint(1)
	for i := range p {
		index += w * uint(p[i])
		w *= e[i]
	}
	return index
}

// domainPoint is the inverse of domainIndex, written into dst.
func domainPoint[P PosInt](e extents, dst Point[P], index uint) Point[P] {
	for i := range dst {
		dst[i] = P(index % e[i])
		index /= e[i]
	}
	return dst
}

// domainContains reports whether every coordinate of p lies inside the box.
func domainContains[P PosInt](e extents, p Point[P]) bool {
	for i := range p {
		if uint(p[i]) >= e[i] {
			return false
		}
	}
	return true
}
