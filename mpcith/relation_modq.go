package mpcith

import (
	"io"

	"github.com/pkg/errors"
	sha3 "golang.org/x/crypto/sha3"
)

// Size of the public seed from which the matrix of a ModQRelation
// instance is expanded.
const modq_seed_size = 32

// ModQRelation is a linear relation modulo q = 12289:
//
//	A·x = y mod q
//
// with A a public M×N matrix expanded from a 32-byte seed, y public, and a
// ternary witness x (coefficients -1, 0 or +1). Shares are uniform vectors
// modulo q. The first-round challenge is a T×M matrix R; party i outputs
// R·A·x_i (minus R·y for the lead party), so that the outputs of an honest
// run sum to zero.
//
// This relation exercises the protocol with realistic data shapes; it
// proves only the linear constraint, not the shortness of x, and thus
// carries no hardness claim by itself.
//
// N, M and T MUST be non-zero multiples of 4.
type ModQRelation struct {
	N int
	M int
	T int
}

func (rel *ModQRelation) Name() string {
	return "modq-linear"
}

func (rel *ModQRelation) PublicKeySize() int {
	return modq_seed_size + modq_packed_size(rel.M)
}

func (rel *ModQRelation) WitnessSize() int {
	return modq_packed_size(rel.N)
}

func (rel *ModQRelation) BroadcastSize() int {
	return modq_packed_size(rel.T)
}

// Check the relation dimensions.
func (rel *ModQRelation) validate() error {
	if rel.N <= 0 || rel.M <= 0 || rel.T <= 0 ||
		(rel.N&3) != 0 || (rel.M&3) != 0 || (rel.T&3) != 0 {
		return errors.Wrapf(ErrInvalidParams,
			"modq relation dimensions (%d,%d,%d) must be positive multiples of 4",
			rel.N, rel.M, rel.T)
	}
	return nil
}

// Expand the public matrix (row-major, M rows of N values).
func (rel *ModQRelation) expand_matrix(seed []byte) []uint16 {
	sh := sha3.NewShake128()
	sh.Write(seed)
	sh.Write([]byte{'A'})
	a := make([]uint16, rel.M*rel.N)
	mq_sample_uniform(sh, a)
	return a
}

func (rel *ModQRelation) GenerateInstance(r io.Reader) ([]byte, []byte, error) {
	var seed [modq_seed_size]byte
	if _, err := io.ReadFull(r, seed[:]); err != nil {
		return nil, nil, errors.Wrap(ErrRandomSource, err.Error())
	}

	// Ternary witness: bytes of value 255 are rejected so that the
	// reduction modulo 3 is unbiased.
	n := rel.N
	x := make([]uint16, n)
	var buf [64]byte
	ptr := len(buf)
	for i := 0; i < n; {
		if ptr == len(buf) {
			if _, err := io.ReadFull(r, buf[:]); err != nil {
				return nil, nil, errors.Wrap(ErrRandomSource, err.Error())
			}
			ptr = 0
		}
		b := buf[ptr]
		ptr++
		if b == 255 {
			continue
		}
		x[i] = uint16(mq_from_small(int32(b%3) - 1))
		i++
	}

	a := rel.expand_matrix(seed[:])
	y := make([]uint16, rel.M)
	for i := 0; i < rel.M; i++ {
		row := a[i*n : (i+1)*n]
		s := uint32(0)
		for j := 0; j < n; j++ {
			s = mq_mac(s, uint32(row[j]), uint32(x[j]))
		}
		y[i] = uint16(s)
	}

	pub := make([]byte, rel.PublicKeySize())
	copy(pub, seed[:])
	modq_encode(y, pub[modq_seed_size:])
	wit := make([]byte, rel.WitnessSize())
	modq_encode(x, wit)
	return pub, wit, nil
}

// Decoded ModQRelation instance.
type modqInstance struct {
	rel *ModQRelation
	a   []uint16
	y   []uint16
}

func (rel *ModQRelation) ParseInstance(pub []byte) (Instance, error) {
	if len(pub) != rel.PublicKeySize() {
		return nil, errors.Wrapf(ErrInvalidVerifyingKey,
			"modq instance has length %d (expected %d)", len(pub), rel.PublicKeySize())
	}
	y := make([]uint16, rel.M)
	if modq_decode(pub[modq_seed_size:], y) != 1 {
		return nil, errors.Wrap(ErrInvalidVerifyingKey, "non-canonical modq instance")
	}
	return &modqInstance{
		rel: rel,
		a:   rel.expand_matrix(pub[:modq_seed_size]),
		y:   y,
	}, nil
}

// First-round challenge folded into the instance: ra = R·A (T×N),
// ry = R·y (T values).
type modqChallenge struct {
	rel *ModQRelation
	ra  []uint16
	ry  []uint16
}

func (inst *modqInstance) ExpandChallenge(r io.Reader) Challenge {
	rel := inst.rel
	n, m, t := rel.N, rel.M, rel.T
	rm := make([]uint16, t*m)
	mq_sample_uniform(r, rm)
	c := &modqChallenge{
		rel: rel,
		ra:  make([]uint16, t*n),
		ry:  make([]uint16, t),
	}
	for k := 0; k < t; k++ {
		rrow := rm[k*m : (k+1)*m]
		out := c.ra[k*n : (k+1)*n]
		for j := 0; j < n; j++ {
			s := uint32(0)
			for i := 0; i < m; i++ {
				s = mq_mac(s, uint32(rrow[i]), uint32(inst.a[i*n+j]))
			}
			out[j] = uint16(s)
		}
		s := uint32(0)
		for i := 0; i < m; i++ {
			s = mq_mac(s, uint32(rrow[i]), uint32(inst.y[i]))
		}
		c.ry[k] = uint16(s)
	}
	return c
}

func (c *modqChallenge) Evaluate(dst []byte, share []byte, lead bool) int {
	n, t := c.rel.N, c.rel.T
	x := make([]uint16, n)
	modq_decode(share, x)
	out := make([]uint16, t)
	for k := 0; k < t; k++ {
		row := c.ra[k*n : (k+1)*n]
		s := uint32(0)
		for j := 0; j < n; j++ {
			s = mq_mac(s, uint32(row[j]), uint32(x[j]))
		}
		if lead {
			s = mq_sub(s, uint32(c.ry[k]))
		}
		out[k] = uint16(s)
	}
	return modq_encode(out, dst)
}

func (c *modqChallenge) Target(dst []byte) int {
	out := make([]uint16, c.rel.T)
	return modq_encode(out, dst)
}

func (rel *ModQRelation) RandomShare(r io.Reader, dst []byte) {
	x := make([]uint16, rel.N)
	mq_sample_uniform(r, x)
	modq_encode(x, dst)
}

// Apply a coefficient-wise operation on two packed vectors of n values.
func modq_packed_op(n int, dst, a, b []byte, op func(uint32, uint32) uint32) {
	va := make([]uint16, n)
	vb := make([]uint16, n)
	modq_decode(a, va)
	modq_decode(b, vb)
	for i := 0; i < n; i++ {
		va[i] = uint16(op(uint32(va[i]), uint32(vb[i])))
	}
	modq_encode(va, dst)
}

func (rel *ModQRelation) AddShare(dst, a, b []byte) {
	modq_packed_op(rel.N, dst, a, b, mq_add)
}

func (rel *ModQRelation) SubShare(dst, a, b []byte) {
	modq_packed_op(rel.N, dst, a, b, mq_sub)
}

func (rel *ModQRelation) ValidShare(s []byte) bool {
	if len(s) != rel.WitnessSize() {
		return false
	}
	x := make([]uint16, rel.N)
	return modq_decode(s, x) == 1
}

func (rel *ModQRelation) AddBroadcast(dst, a, b []byte) {
	modq_packed_op(rel.T, dst, a, b, mq_add)
}

func (rel *ModQRelation) SubBroadcast(dst, a, b []byte) {
	modq_packed_op(rel.T, dst, a, b, mq_sub)
}
