package mpcith

import (
	"crypto/subtle"
	"io"

	"github.com/pkg/errors"
	sha3 "golang.org/x/crypto/sha3"
)

// GF256Relation is the linear relation A·x = y over GF(2^8), with A a
// public M×N matrix expanded from a 32-byte seed. The witness and its
// shares are arbitrary vectors of N bytes; the group law is XOR. The
// first-round challenge is a T×M matrix R over GF(2^8); party i outputs
// R·A·x_i (plus R·y for the lead party), which sums to zero.
//
// As with ModQRelation, this is a structural relation with no hardness
// claim; small binary fields are what several schemes use for their
// shares, which makes it a useful second integration target.
type GF256Relation struct {
	N int
	M int
	T int
}

func (rel *GF256Relation) Name() string {
	return "gf256-linear"
}

func (rel *GF256Relation) PublicKeySize() int {
	return modq_seed_size + rel.M
}

func (rel *GF256Relation) WitnessSize() int {
	return rel.N
}

func (rel *GF256Relation) BroadcastSize() int {
	return rel.T
}

func (rel *GF256Relation) validate() error {
	if rel.N <= 0 || rel.M <= 0 || rel.T <= 0 {
		return errors.Wrapf(ErrInvalidParams,
			"gf256 relation dimensions (%d,%d,%d) must be positive",
			rel.N, rel.M, rel.T)
	}
	return nil
}

func (rel *GF256Relation) expand_matrix(seed []byte) []uint8 {
	sh := sha3.NewShake128()
	sh.Write(seed)
	sh.Write([]byte{'G'})
	a := make([]uint8, rel.M*rel.N)
	sh.Read(a)
	return a
}

// Compute A·x.
func (rel *GF256Relation) apply(a []uint8, x []uint8, y []uint8) {
	n := rel.N
	for i := 0; i < rel.M; i++ {
		y[i] = gf_dot(a[i*n:(i+1)*n], x)
	}
}

func (rel *GF256Relation) GenerateInstance(r io.Reader) ([]byte, []byte, error) {
	pub := make([]byte, rel.PublicKeySize())
	wit := make([]byte, rel.WitnessSize())
	if _, err := io.ReadFull(r, pub[:modq_seed_size]); err != nil {
		return nil, nil, errors.Wrap(ErrRandomSource, err.Error())
	}
	if _, err := io.ReadFull(r, wit); err != nil {
		return nil, nil, errors.Wrap(ErrRandomSource, err.Error())
	}
	a := rel.expand_matrix(pub[:modq_seed_size])
	rel.apply(a, wit, pub[modq_seed_size:])
	return pub, wit, nil
}

type gf256Instance struct {
	rel *GF256Relation
	a   []uint8
	y   []uint8
}

func (rel *GF256Relation) ParseInstance(pub []byte) (Instance, error) {
	if len(pub) != rel.PublicKeySize() {
		return nil, errors.Wrapf(ErrInvalidVerifyingKey,
			"gf256 instance has length %d (expected %d)", len(pub), rel.PublicKeySize())
	}
	y := make([]uint8, rel.M)
	copy(y, pub[modq_seed_size:])
	return &gf256Instance{
		rel: rel,
		a:   rel.expand_matrix(pub[:modq_seed_size]),
		y:   y,
	}, nil
}

type gf256Challenge struct {
	rel *GF256Relation
	ra  []uint8
	ry  []uint8
}

func (inst *gf256Instance) ExpandChallenge(r io.Reader) Challenge {
	rel := inst.rel
	n, m, t := rel.N, rel.M, rel.T
	rm := make([]uint8, t*m)
	read_stream(r, rm)
	c := &gf256Challenge{
		rel: rel,
		ra:  make([]uint8, t*n),
		ry:  make([]uint8, t),
	}
	col := make([]uint8, m)
	for j := 0; j < n; j++ {
		for i := 0; i < m; i++ {
			col[i] = inst.a[i*n+j]
		}
		for k := 0; k < t; k++ {
			c.ra[k*n+j] = gf_dot(rm[k*m:(k+1)*m], col)
		}
	}
	for k := 0; k < t; k++ {
		c.ry[k] = gf_dot(rm[k*m:(k+1)*m], inst.y)
	}
	return c
}

func (c *gf256Challenge) Evaluate(dst []byte, share []byte, lead bool) int {
	n, t := c.rel.N, c.rel.T
	for k := 0; k < t; k++ {
		v := gf_dot(c.ra[k*n:(k+1)*n], share[:n])
		if lead {
			v ^= c.ry[k]
		}
		dst[k] = v
	}
	return t
}

func (c *gf256Challenge) Target(dst []byte) int {
	t := c.rel.T
	for k := 0; k < t; k++ {
		dst[k] = 0
	}
	return t
}

func (rel *GF256Relation) RandomShare(r io.Reader, dst []byte) {
	read_stream(r, dst[:rel.N])
}

func (rel *GF256Relation) AddShare(dst, a, b []byte) {
	subtle.XORBytes(dst[:rel.N], a[:rel.N], b[:rel.N])
}

func (rel *GF256Relation) SubShare(dst, a, b []byte) {
	subtle.XORBytes(dst[:rel.N], a[:rel.N], b[:rel.N])
}

func (rel *GF256Relation) ValidShare(s []byte) bool {
	return len(s) == rel.N
}

func (rel *GF256Relation) AddBroadcast(dst, a, b []byte) {
	subtle.XORBytes(dst[:rel.T], a[:rel.T], b[:rel.T])
}

func (rel *GF256Relation) SubBroadcast(dst, a, b []byte) {
	rel.AddBroadcast(dst, a, b)
}
