package psh

import "github.com/google/uuid"

const defaultMaxRetries = 32

// Option configures construction.
type Option interface {
	set(*options)
}

type optFn func(*options)

func (f optFn) set(o *options) { f(o) }

type options struct {
	seed       uint64
	seeded     bool
	maxRetries int
	extents    extents
	buildID    uuid.UUID
	hasID      bool
}

// WithSeed makes construction deterministic: the same seed over the same
// input yields the same prime choices and offset search order. Without it,
// construction seeds itself from the wall clock.
func WithSeed(seed uint64) Option {
	return optFn(func(o *options) {
		o.seed = seed
		o.seeded = true
	})
}

// WithMaxRetries bounds the number of table-sizing attempts before
// construction gives up with ErrConstructionFailed. The default is 32.
func WithMaxRetries(n int) Option {
	return optFn(func(o *options) {
		o.maxRetries = n
	})
}

// WithDomainExtents sets a per-axis domain box instead of the uniform width
// passed to New. The number of extents must match the dimension.
func WithDomainExtents(ext ...uint) Option {
	return optFn(func(o *options) {
		o.extents = extents(ext)
	})
}

// WithBuildID tags the map with a caller-chosen build id instead of a
// freshly generated one. The id is informational only; it never enters the
// hash computation.
func WithBuildID(id uuid.UUID) Option {
	return optFn(func(o *options) {
		o.buildID = id
		o.hasID = true
	})
}

func getOpts(opts []Option) options {
	o := options{maxRetries: defaultMaxRetries}
	for _, op := range opts {
		op.set(&o)
	}
	if !o.hasID {
		o.buildID = uuid.New()
	}
	return o
}
