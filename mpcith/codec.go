package mpcith

import (
	"github.com/pkg/errors"
)

// Signature layout (all sizes fixed by the parameter set):
//
//	salt            SaltSize
//	hash1           DigestSize
//	hash2           DigestSize
//	tau times:
//	  seed_path     Depth*SeedSize
//	  hidden_commit DigestSize
//	  aux_share     WitnessSize
//	  broadcast_msg BroadcastSize
//
// aux_share is all-zero when the hidden party is the lead party.
//
// Keys start with a header byte: ID for verifying keys, 0x80|ID for
// signing keys. A verifying key is followed by the relation public
// instance; a signing key by the witness then the public instance.

// Response of one repetition.
type repResponse struct {
	path   [][]byte
	commit []byte
	aux    []byte
	bcast  []byte
}

// Decoded signature. Slices may point into the source buffer.
type signature struct {
	salt  []byte
	hash1 []byte
	hash2 []byte
	reps  []repResponse
}

// Encode a signature.
func encode_signature(p *ParamSet, sig *signature) []byte {
	buf := make([]byte, p.SignatureSize())
	j := 0
	put := func(b []byte, n int) {
		if len(b) != n {
			panic("mpcith: signature field size mismatch")
		}
		j += copy(buf[j:j+n], b)
	}
	put(sig.salt, p.SaltSize())
	put(sig.hash1, p.DigestSize())
	put(sig.hash2, p.DigestSize())
	for e := range sig.reps {
		r := &sig.reps[e]
		for _, s := range r.path {
			put(s, p.SeedSize())
		}
		put(r.commit, p.DigestSize())
		put(r.aux, p.Relation.WitnessSize())
		put(r.bcast, p.Relation.BroadcastSize())
	}
	if j != len(buf) {
		panic("mpcith: incomplete signature encoding")
	}
	return buf
}

// Decode a signature. The only possible failure is a length mismatch;
// contents are checked by the verifier.
func decode_signature(p *ParamSet, buf []byte) (*signature, error) {
	if len(buf) != p.SignatureSize() {
		return nil, errors.Errorf("mpcith: signature has length %d (expected %d)",
			len(buf), p.SignatureSize())
	}
	j := 0
	take := func(n int) []byte {
		b := buf[j : j+n]
		j += n
		return b
	}
	sig := &signature{
		salt:  take(p.SaltSize()),
		hash1: take(p.DigestSize()),
		hash2: take(p.DigestSize()),
		reps:  make([]repResponse, p.Repetitions),
	}
	for e := range sig.reps {
		r := &sig.reps[e]
		r.path = make([][]byte, p.Depth())
		for d := range r.path {
			r.path[d] = take(p.SeedSize())
		}
		r.commit = take(p.DigestSize())
		r.aux = take(p.Relation.WitnessSize())
		r.bcast = take(p.Relation.BroadcastSize())
	}
	return sig, nil
}

// Encode a key pair from the relation instance and witness.
func encode_keypair(p *ParamSet, pub []byte, wit []byte) (skey []byte, vkey []byte) {
	rel := p.Relation
	if len(pub) != rel.PublicKeySize() {
		relation_contract_panic(rel, "public instance", len(pub), rel.PublicKeySize())
	}
	if len(wit) != rel.WitnessSize() {
		relation_contract_panic(rel, "witness", len(wit), rel.WitnessSize())
	}
	vkey = make([]byte, p.VerifyingKeySize())
	vkey[0] = p.ID
	copy(vkey[1:], pub)
	skey = make([]byte, p.SigningKeySize())
	skey[0] = 0x80 | p.ID
	copy(skey[1:], wit)
	copy(skey[1+len(wit):], pub)
	return
}

// Decode a signing key, returning the witness and the encoded verifying
// key (both slices point into new buffers).
func decode_signing_key(p *ParamSet, skey []byte) (wit []byte, vkey []byte, err error) {
	if len(skey) != p.SigningKeySize() || skey[0] != (0x80|p.ID) {
		return nil, nil, errors.Wrapf(ErrInvalidSigningKey, "%s: bad header or length", p.Name)
	}
	ws := p.Relation.WitnessSize()
	wit = make([]byte, ws)
	copy(wit, skey[1:1+ws])
	if !p.Relation.ValidShare(wit) {
		return nil, nil, errors.Wrapf(ErrInvalidSigningKey, "%s: non-canonical witness", p.Name)
	}
	vkey = make([]byte, p.VerifyingKeySize())
	vkey[0] = p.ID
	copy(vkey[1:], skey[1+ws:])
	return wit, vkey, nil
}

// Check the header and length of a verifying key, and return the relation
// public instance.
func decode_verifying_key(p *ParamSet, vkey []byte) ([]byte, error) {
	if len(vkey) != p.VerifyingKeySize() || vkey[0] != p.ID {
		return nil, errors.Wrapf(ErrInvalidVerifyingKey, "%s: bad header or length", p.Name)
	}
	return vkey[1:], nil
}
