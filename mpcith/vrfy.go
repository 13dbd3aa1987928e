package mpcith

import (
	"crypto/subtle"
)

// Verify a signature.
//
//	- vkey is the verifying key (public)
//	- msg is the signed message
//	- sig is the signature to verify
//
// Returned value is true for a valid signature, false otherwise. If the
// key cannot be decoded, then false is returned. This function accepts
// only the standard parameter sets; if the key uses a weak set, then
// false is returned systematically.
func Verify(vkey []byte, msg []byte, sig []byte) bool {
	return verify_preset(false, vkey, msg, sig)
}

// Verify a signature (weak keys). This function acts like [Verify],
// except that it accepts only keys using a weak parameter set.
func VerifyWeak(vkey []byte, msg []byte, sig []byte) bool {
	return verify_preset(true, vkey, msg, sig)
}

// Resolve the built-in parameter set from a verifying key header.
func verify_preset(weak bool, vkey []byte, msg []byte, sig []byte) bool {
	if len(vkey) == 0 {
		return false
	}
	p, err := ParamSetByID(vkey[0])
	if err != nil || p.Weak != weak {
		return false
	}
	s, err := NewScheme(p)
	if err != nil {
		return false
	}
	return s.Verify(vkey, msg, sig)
}

// Verify a signature against the scheme's parameter set. The verifier
// consumes no randomness.
func (s *Scheme) Verify(vkey []byte, msg []byte, sig []byte) bool {
	p := s.params
	ds, err := decode_signature(p, sig)
	if err != nil {
		s.log.Debug().Str("reason", "length").Msg("signature rejected")
		return false
	}
	pub, err := decode_verifying_key(p, vkey)
	if err != nil {
		s.log.Debug().Str("reason", "key").Msg("signature rejected")
		return false
	}
	inst, err := p.Relation.ParseInstance(pub)
	if err != nil {
		s.log.Debug().Str("reason", "key").Msg("signature rejected")
		return false
	}
	v := &verifier{s: s, inst: inst, vkey: vkey, sig: ds}
	if v.run(msg) != 1 {
		s.log.Debug().Str("reason", "proof").Msg("signature rejected")
		return false
	}
	return true
}

// Verifier state for one signature.
type verifier struct {
	s    *Scheme
	inst Instance
	vkey []byte
	sig  *signature
}

// Recompute the transcript from the disclosed values. Returned value is 1
// if the signature is valid, 0 otherwise. All checks are accumulated into
// a single flag so that the outcome does not reveal which one failed.
func (v *verifier) run(msg []byte) int {
	p := v.s.params
	rel := p.Relation
	ds := v.sig

	// Both challenges come from the disclosed hashes; the recomputed
	// transcript must then reproduce these hashes exactly.
	chals := derive_challenge1(p.Hash, v.inst, msg, ds.hash1, p.Repetitions)
	hidden, err := derive_challenge2(p.Hash, ds.hash2, p.Parties, p.Repetitions)
	if err != nil {
		v.s.log.Error().Err(err).Msg("hidden party sampling failed")
		return 0
	}

	coms := make([][][]byte, p.Repetitions)
	bcs := make([][][]byte, p.Repetitions)
	flags := make([]int, p.Repetitions)
	zero_aux := make([]byte, rel.WitnessSize())
	_ = v.s.each_repetition(func(e int) error {
		r := &ds.reps[e]
		h := hidden[e]
		t := reconstruct_partial(p.Hash, r.path, ds.salt, p.Parties, h, v.s.batched)

		// The auxiliary share is meaningful only when the lead party is
		// opened; otherwise it must be all-zero.
		var ok int
		if h == 0 {
			ok = subtle.ConstantTimeCompare(r.aux, zero_aux)
		} else {
			ok = subtle.ConstantTimeByteEq(b2u8(rel.ValidShare(r.aux)), 1)
		}

		shares := open_shares(p.Hash, rel, t, r.aux, ds.salt, e, h)
		seeds := make([][]byte, p.Parties)
		auxs := make([][]byte, p.Parties)
		for i := range seeds {
			seeds[i], _ = t.leaf(i)
		}
		if h != 0 {
			auxs[0] = r.aux
		}
		rc := commit_parties(p.Hash, ds.salt, e, seeds, auxs, h,
			p.DigestSize(), v.s.batched)
		rc[h] = r.commit
		coms[e] = rc

		out, cand := recompute_from_partial(rel, chals[e], shares, h,
			eval_target(rel, chals[e]))
		ok &= subtle.ConstantTimeCompare(cand, r.bcast)
		out[h] = r.bcast
		bcs[e] = out
		flags[e] = ok
		return nil
	})

	hash1 := make([]byte, p.DigestSize())
	compute_hash1(p.Hash, v.vkey, ds.salt, coms, hash1)
	hash2 := make([]byte, p.DigestSize())
	compute_hash2(p.Hash, ds.hash1, bcs, hash2)

	ok := subtle.ConstantTimeCompare(hash1, ds.hash1)
	ok &= subtle.ConstantTimeCompare(hash2, ds.hash2)
	for _, f := range flags {
		ok &= f
	}
	return ok
}

func b2u8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
