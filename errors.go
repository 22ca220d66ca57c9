package psh

import "errors"

// ErrConstructionFailed is returned when the table-sizing loop exhausts its
// retry budget without producing a collision-free table. It usually means
// HashInt is too narrow for the domain, or the defined set is too close to
// the hash table capacity for the chosen parameters.
var ErrConstructionFailed = errors.New("could not build PSH")
