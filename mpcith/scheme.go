package mpcith

import (
	"crypto/rand"
	"io"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/cpu"
)

// Scheme binds a validated parameter set to the runtime context used for
// key generation, signing and verification: random source, logger and
// scheduling options. A Scheme is immutable once created; it may be used
// concurrently as long as its random source supports concurrent reads
// (the default, crypto/rand, does; a CTRDRBG does not).
//
// None of the options changes any produced byte: signatures depend only
// on the parameter set, the key, the message and the random source.
type Scheme struct {
	params  *ParamSet
	rng     io.Reader
	log     zerolog.Logger
	workers int
	batched bool
}

// Option configures a Scheme.
type Option func(*Scheme)

// Use the provided random source (nil means crypto/rand). The source MUST
// be cryptographically secure; it is only read by KeyGen and Sign.
func WithRandom(rng io.Reader) Option {
	return func(s *Scheme) {
		s.rng = rng
	}
}

// Use the provided logger. The default logger discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Scheme) {
		s.log = l
	}
}

// Process up to n repetitions concurrently (n <= 1 means sequential).
// The default is GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(s *Scheme) {
		s.workers = n
	}
}

// Force the 4-lane hashing path on or off for commitments and seed
// trees. By default it is used on CPUs with wide SIMD units.
func WithBatchedHashing(on bool) Option {
	return func(s *Scheme) {
		s.batched = on
	}
}

// Default for batched hashing.
func batched_default() bool {
	return cpu.X86.HasAVX2 || cpu.ARM64.HasSHA3
}

// Create a new scheme instance over the provided parameter set, which is
// validated first. Weak parameter sets are accepted here; the segregation
// between weak and standard sets applies to the package-level functions.
func NewScheme(p *ParamSet, opts ...Option) (*Scheme, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	s := &Scheme{
		params:  p,
		log:     zerolog.Nop(),
		workers: runtime.GOMAXPROCS(0),
		batched: batched_default(),
	}
	for _, o := range opts {
		o(s)
	}
	s.log = s.log.With().Str("params", p.Name).Logger()
	s.log.Debug().
		Int("parties", p.Parties).
		Int("repetitions", p.Repetitions).
		Str("hash", p.Hash.String()).
		Str("relation", p.Relation.Name()).
		Int("siglen", p.SignatureSize()).
		Int("workers", s.workers).
		Bool("batched", s.batched).
		Msg("scheme initialized")
	return s, nil
}

// Get the parameter set.
func (s *Scheme) Params() *ParamSet {
	return s.params
}

// Get the random source.
func (s *Scheme) random() io.Reader {
	if s.rng == nil {
		return rand.Reader
	}
	return s.rng
}

// Run fn for every repetition index. Calls may run concurrently; each
// call must only write into slots indexed by its own repetition.
func (s *Scheme) each_repetition(fn func(e int) error) error {
	reps := s.params.Repetitions
	if s.workers <= 1 || reps == 1 {
		for e := 0; e < reps; e++ {
			if err := fn(e); err != nil {
				return err
			}
		}
		return nil
	}
	var g errgroup.Group
	g.SetLimit(s.workers)
	for e := 0; e < reps; e++ {
		e := e
		g.Go(func() error {
			return fn(e)
		})
	}
	return g.Wait()
}
