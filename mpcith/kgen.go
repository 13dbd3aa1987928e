package mpcith

import (
	"io"

	"github.com/pkg/errors"
	"golang.org/x/crypto/hkdf"
	sha3 "golang.org/x/crypto/sha3"
)

// Generate a new key pair.
//
//	- p is the parameter set (standard or weak).
//	- rng is random source to use (nil to use the OS RNG).
//
// Output is the new key pair (signing and verifying keys, both encoded).
// An error is reported if the parameter set is invalid, or if the random
// source fails.
func KeyGen(p *ParamSet, rng io.Reader) (skey []byte, vkey []byte, err error) {
	s, err := NewScheme(p, WithRandom(rng))
	if err != nil {
		return nil, nil, err
	}
	return s.KeyGen()
}

// Generate a new key pair with the scheme's random source.
func (s *Scheme) KeyGen() (skey []byte, vkey []byte, err error) {
	var seed [32]byte
	if _, err = io.ReadFull(s.random(), seed[:]); err != nil {
		return nil, nil, errors.Wrap(ErrRandomSource, err.Error())
	}
	skey, vkey, err = keygen_inner(s.params, seed[:])
	if err != nil {
		return nil, nil, err
	}
	s.log.Debug().Int("vklen", len(vkey)).Msg("key pair generated")
	return skey, vkey, nil
}

// Inner function; the output is deterministic for the provided seed. The
// seed is expanded with HKDF-SHA3-256, with the parameter set name as
// context, into the randomness consumed by the relation.
func keygen_inner(p *ParamSet, seed []byte) (skey []byte, vkey []byte, err error) {
	r := hkdf.New(sha3.New256, seed, nil, []byte("mpcith keygen "+p.Name))
	pub, wit, err := p.Relation.GenerateInstance(r)
	if err != nil {
		return nil, nil, err
	}
	skey, vkey = encode_keypair(p, pub, wit)
	return skey, vkey, nil
}
