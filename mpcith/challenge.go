package mpcith

import (
	"io"

	"github.com/pkg/errors"
)

// Size of one squeezed block when sampling hidden-party indices.
const chal2_block_size = 136

// Maximum number of blocks that the hidden-party sampler may consume
// while drawing a single index. With a power-of-two number of parties no
// candidate is ever rejected, so one draw reads at most one new block;
// with other bounds the rejection rate is below 1/2, and 1088 rejected
// candidates in a row do not happen with any realistic probability.
const chal2_max_blocks = 16

// Sampler for integers uniformly distributed in [0,bound-1], drawn from an
// XOF output stream.
//
// Candidates are 16-bit little-endian words, masked to the smallest
// power of two not lower than the bound. A candidate that is not lower
// than the bound is discarded and the next one is used; the source buffer
// is refilled with a new block transparently when exhausted. The
// sequence is never biased: there is no modular reduction.
type indexSampler struct {
	src       io.Reader
	bound     uint32
	mask      uint32
	buf       [chal2_block_size]byte
	ptr       int
	blocks    int // total blocks read
	maxBlocks int // per draw
}

// Create a new sampler over the provided stream. The bound must be in
// [1,65536].
func newIndexSampler(src io.Reader, bound int, maxBlocks int) *indexSampler {
	if bound < 1 || bound > 65536 {
		panic("mpcith: invalid sampling bound")
	}
	s := &indexSampler{
		src:       src,
		bound:     uint32(bound),
		maxBlocks: maxBlocks,
	}
	m := uint32(1)
	for m < s.bound {
		m <<= 1
	}
	s.mask = m - 1
	s.ptr = len(s.buf)
	return s
}

// Get the next value. ErrChallengeExhausted is returned if maxBlocks new
// blocks have been read for this value without producing it; the budget
// starts over with every call.
func (s *indexSampler) next() (int, error) {
	read := 0
	for {
		if s.ptr >= len(s.buf) {
			if read >= s.maxBlocks {
				return 0, errors.Wrapf(ErrChallengeExhausted,
					"no value below %d in %d blocks", s.bound, read)
			}
			if _, err := io.ReadFull(s.src, s.buf[:]); err != nil {
				return 0, errors.Wrap(err, "mpcith: challenge stream")
			}
			read++
			s.blocks++
			s.ptr = 0
		}
		w := (uint32(s.buf[s.ptr]) | (uint32(s.buf[s.ptr+1]) << 8)) & s.mask
		s.ptr += 2
		if w < s.bound {
			return int(w), nil
		}
	}
}

// Derive the hidden-party index of each repetition from hash2.
func derive_challenge2(h HashKind, hash2 []byte, parties int, reps int) ([]int, error) {
	x := new_xof(h)
	x.Write(hash2)
	write_tag(x, domain_chal2)
	s := newIndexSampler(x, parties, chal2_max_blocks)
	hidden := make([]int, reps)
	for e := 0; e < reps; e++ {
		v, err := s.next()
		if err != nil {
			return nil, err
		}
		hidden[e] = v
	}
	return hidden, nil
}

// Derive the first-round challenges (one per repetition, in repetition
// order) from the message and hash1.
func derive_challenge1(h HashKind, inst Instance, msg []byte, hash1 []byte, reps int) []Challenge {
	x := new_xof(h)
	x.Write(msg)
	x.Write(hash1)
	write_tag(x, domain_chal1)
	chals := make([]Challenge, reps)
	for e := 0; e < reps; e++ {
		chals[e] = inst.ExpandChallenge(x)
	}
	return chals
}
