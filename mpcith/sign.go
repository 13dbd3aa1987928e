package mpcith

import (
	"crypto/subtle"
	"io"

	"github.com/pkg/errors"
)

// Sign a message using a given signing key.
//
//	- rng is the random source to use (nil to use the OS RNG)
//	- skey is the signing key (private)
//	- msg is the message to sign
//
// The parameter set is obtained from the key header. Using the OS RNG
// (i.e. setting rng to nil) is recommended. If an explicit random source
// is provided, then the caller MUST make sure that it provides sufficient
// entropy. This function will reject any attempt at signing with a key
// using a weak parameter set.
func Sign(rng io.Reader, skey []byte, msg []byte) ([]byte, error) {
	return sign_preset(false, rng, skey, msg)
}

// Similar to [Sign], except that this function accepts only the weak
// parameter sets, which are meant for research and tests.
func SignWeak(rng io.Reader, skey []byte, msg []byte) ([]byte, error) {
	return sign_preset(true, rng, skey, msg)
}

// Resolve the built-in parameter set from a signing key header.
func sign_preset(weak bool, rng io.Reader, skey []byte, msg []byte) ([]byte, error) {
	if len(skey) == 0 || (skey[0]&0x80) == 0 {
		return nil, ErrInvalidSigningKey
	}
	p, err := ParamSetByID(skey[0] & 0x7F)
	if err != nil {
		return nil, err
	}
	if p.Weak && !weak {
		return nil, errors.Wrap(ErrWeakParams, p.Name)
	}
	if !p.Weak && weak {
		return nil, errors.Wrap(ErrStrongParams, p.Name)
	}
	s, err := NewScheme(p, WithRandom(rng))
	if err != nil {
		return nil, err
	}
	return s.Sign(skey, msg)
}

// Sign a message with the scheme's random source. The random source is
// read once, for the salt and the signing seed.
func (s *Scheme) Sign(skey []byte, msg []byte) ([]byte, error) {
	p := s.params
	buf := make([]byte, p.SaltSize()+p.SeedSize())
	if _, err := io.ReadFull(s.random(), buf); err != nil {
		return nil, errors.Wrap(ErrRandomSource, err.Error())
	}
	defer clear_bytes(buf[p.SaltSize():])
	return s.sign_seeded(buf[:p.SaltSize()], buf[p.SaltSize():], skey, msg)
}

// Inner signature function with explicit salt and signing seed; this is
// used for reproducible test vectors.
func (s *Scheme) sign_seeded(salt []byte, mseed []byte, skey []byte, msg []byte) ([]byte, error) {
	p := s.params
	wit, vkey, err := decode_signing_key(p, skey)
	if err != nil {
		return nil, err
	}
	inst, err := p.Relation.ParseInstance(vkey[1:])
	if err != nil {
		return nil, errors.Wrap(ErrInvalidSigningKey, err.Error())
	}

	sg := &signer{
		s:     s,
		inst:  inst,
		wit:   wit,
		vkey:  vkey,
		salt:  salt,
		mseed: mseed,
	}
	defer sg.wipe()
	if err = sg.commit(); err != nil {
		return nil, err
	}
	sg.derive_challenge1(msg)
	if err = sg.respond1(); err != nil {
		return nil, err
	}
	if err = sg.derive_challenge2(); err != nil {
		s.log.Error().Err(err).Msg("hidden party sampling failed")
		return nil, err
	}
	sg.respond2()
	sig := sg.finalize()
	s.log.Debug().Int("siglen", len(sig)).Msg("signature generated")
	return sig, nil
}

// Signer state for one signature. All fields indexed by repetition are
// pre-sized before the parallel steps run.
type signer struct {
	s     *Scheme
	state protocolState
	inst  Instance
	wit   []byte
	vkey  []byte
	salt  []byte
	mseed []byte

	trees  []*seedTree
	shares [][][]byte
	coms   [][][]byte
	hash1  []byte
	chals  []Challenge
	bcs    [][][]byte
	hash2  []byte
	hidden []int
	resp   []repResponse
}

// Init -> Committed: build the seed trees, split the witness and commit
// to every party, then compute hash1.
func (sg *signer) commit() error {
	sg.state.advance(stateInit, stateCommitted)
	p := sg.s.params
	rel := p.Relation
	reps := p.Repetitions
	sg.trees = make([]*seedTree, reps)
	sg.shares = make([][][]byte, reps)
	sg.coms = make([][][]byte, reps)
	err := sg.s.each_repetition(func(e int) error {
		root := make([]byte, p.SeedSize())
		derive_root_seed(p.Hash, sg.mseed, sg.salt, e, root)
		t := expand_tree(p.Hash, root, sg.salt, p.Parties, sg.s.batched)
		shares := split_witness(p.Hash, rel, sg.wit, t, sg.salt, e)
		seeds := make([][]byte, p.Parties)
		auxs := make([][]byte, p.Parties)
		for i := range seeds {
			seeds[i], _ = t.leaf(i)
		}
		auxs[0] = shares[0]
		sg.trees[e] = t
		sg.shares[e] = shares
		sg.coms[e] = commit_parties(p.Hash, sg.salt, e, seeds, auxs,
			-1, p.DigestSize(), sg.s.batched)
		return nil
	})
	if err != nil {
		return err
	}
	sg.hash1 = make([]byte, p.DigestSize())
	compute_hash1(p.Hash, sg.vkey, sg.salt, sg.coms, sg.hash1)
	return nil
}

// Committed -> Challenge1Derived.
func (sg *signer) derive_challenge1(msg []byte) {
	sg.state.advance(stateCommitted, stateChallenge1Derived)
	p := sg.s.params
	sg.chals = derive_challenge1(p.Hash, sg.inst, msg, sg.hash1, p.Repetitions)
}

// Challenge1Derived -> Responded1: run the parties and compute hash2. The
// sum of the party outputs is checked against the relation target; a
// mismatch means that the signing key holds no valid witness.
func (sg *signer) respond1() error {
	sg.state.advance(stateChallenge1Derived, stateResponded1)
	p := sg.s.params
	rel := p.Relation
	sg.bcs = make([][][]byte, p.Repetitions)
	valid := make([]int, p.Repetitions)
	err := sg.s.each_repetition(func(e int) error {
		out, total := compute_broadcast(rel, sg.chals[e], sg.shares[e])
		sg.bcs[e] = out
		valid[e] = subtle.ConstantTimeCompare(total, eval_target(rel, sg.chals[e]))
		return nil
	})
	if err != nil {
		return err
	}
	ok := 1
	for _, v := range valid {
		ok &= v
	}
	if ok != 1 {
		return errors.Wrap(ErrInvalidSigningKey, "witness does not satisfy the relation")
	}
	sg.hash2 = make([]byte, p.DigestSize())
	compute_hash2(p.Hash, sg.hash1, sg.bcs, sg.hash2)
	return nil
}

// Responded1 -> Challenge2Derived.
func (sg *signer) derive_challenge2() error {
	sg.state.advance(stateResponded1, stateChallenge2Derived)
	p := sg.s.params
	hidden, err := derive_challenge2(p.Hash, sg.hash2, p.Parties, p.Repetitions)
	if err != nil {
		return err
	}
	sg.hidden = hidden
	return nil
}

// Challenge2Derived -> Responded2: open all parties except the hidden one
// in each repetition.
func (sg *signer) respond2() {
	sg.state.advance(stateChallenge2Derived, stateResponded2)
	p := sg.s.params
	ws := p.Relation.WitnessSize()
	sg.resp = make([]repResponse, p.Repetitions)
	for e := range sg.resp {
		h := sg.hidden[e]
		aux := make([]byte, ws)
		if h != 0 {
			copy(aux, sg.shares[e][0])
		}
		sg.resp[e] = repResponse{
			path:   sg.trees[e].path(h),
			commit: sg.coms[e][h],
			aux:    aux,
			bcast:  sg.bcs[e][h],
		}
	}
}

// Responded2 -> Finalized: encode the signature.
func (sg *signer) finalize() []byte {
	sg.state.advance(stateResponded2, stateFinalized)
	return encode_signature(sg.s.params, &signature{
		salt:  sg.salt,
		hash1: sg.hash1,
		hash2: sg.hash2,
		reps:  sg.resp,
	})
}

// Clear secret intermediate values.
func (sg *signer) wipe() {
	for _, t := range sg.trees {
		if t != nil {
			clear_bytes(t.nodes)
		}
	}
	for _, rs := range sg.shares {
		for _, sh := range rs {
			clear_bytes(sh)
		}
	}
	clear_bytes(sg.wit)
}

func clear_bytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
