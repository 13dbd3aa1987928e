package mpcith

import (
	"github.com/pkg/errors"
)

// A parameter set. Every size of keys and signatures is a fixed function
// of the parameter set.
//
// Soundness per repetition is roughly 1/Parties (plus the relation's
// first-round error); Repetitions is chosen so that the combined error is
// below 2^-Lambda, with some margin against attacks on 5-round protocols.
type ParamSet struct {
	// Name of the parameter set.
	Name string

	// Identifier, encoded in the first byte of keys (1 to 127).
	ID uint8

	// Security level in bits (128, 192 or 256).
	Lambda int

	// Number of parties L (a power of two, 2 to 1024).
	Parties int

	// Number of parallel repetitions (tau).
	Repetitions int

	// Hash function for trees, commitments and transcripts.
	Hash HashKind

	// Relation whose witness is proven.
	Relation Relation

	// Weak parameter sets are meant for research and tests only, and are
	// not accepted by Sign and Verify.
	Weak bool
}

// Size of a seed, in bytes.
func (p *ParamSet) SeedSize() int {
	return p.Lambda >> 3
}

// Size of the salt, in bytes.
func (p *ParamSet) SaltSize() int {
	return p.Lambda >> 2
}

// Size of a digest (commitments, hash1, hash2), in bytes.
func (p *ParamSet) DigestSize() int {
	return p.Lambda >> 2
}

// Depth of the seed trees (log2 of the number of parties).
func (p *ParamSet) Depth() int {
	return log2_exact(p.Parties)
}

// Size of the response of one repetition, in bytes.
func (p *ParamSet) repetitionSize() int {
	return p.Depth()*p.SeedSize() + p.DigestSize() +
		p.Relation.WitnessSize() + p.Relation.BroadcastSize()
}

// Size of a signature, in bytes.
func (p *ParamSet) SignatureSize() int {
	return p.SaltSize() + 2*p.DigestSize() + p.Repetitions*p.repetitionSize()
}

// Size of a verifying key, in bytes.
func (p *ParamSet) VerifyingKeySize() int {
	return 1 + p.Relation.PublicKeySize()
}

// Size of a signing key, in bytes.
func (p *ParamSet) SigningKeySize() int {
	return 1 + p.Relation.WitnessSize() + p.Relation.PublicKeySize()
}

// Validate checks the parameter set. All returned errors wrap
// ErrInvalidParams.
func (p *ParamSet) Validate() error {
	if p == nil {
		return errors.Wrap(ErrInvalidParams, "nil parameter set")
	}
	switch p.Lambda {
	case 128, 192, 256:
	default:
		return errors.Wrapf(ErrInvalidParams, "%s: unsupported security level %d",
			p.Name, p.Lambda)
	}
	if p.ID == 0 || p.ID >= 0x80 {
		return errors.Wrapf(ErrInvalidParams, "%s: identifier %d out of range",
			p.Name, p.ID)
	}
	if log2_exact(p.Parties) < 0 || p.Parties > 1024 {
		return errors.Wrapf(ErrInvalidParams,
			"%s: number of parties %d is not a power of two in [2,1024]",
			p.Name, p.Parties)
	}
	if p.Repetitions < 1 || p.Repetitions > 65535 {
		return errors.Wrapf(ErrInvalidParams, "%s: invalid number of repetitions %d",
			p.Name, p.Repetitions)
	}
	if !hash_kind_valid(p.Hash) {
		return errors.Wrapf(ErrInvalidParams, "%s: unknown hash kind %d",
			p.Name, p.Hash)
	}
	rel := p.Relation
	if rel == nil {
		return errors.Wrapf(ErrInvalidParams, "%s: no relation", p.Name)
	}
	if v, ok := rel.(interface{ validate() error }); ok {
		if err := v.validate(); err != nil {
			return errors.Wrap(err, p.Name)
		}
	}
	if rel.PublicKeySize() <= 0 || rel.WitnessSize() <= 0 || rel.BroadcastSize() <= 0 {
		return errors.Wrapf(ErrInvalidParams, "%s: relation %q has empty encodings",
			p.Name, rel.Name())
	}
	return nil
}

var (
	relModQ128  = &ModQRelation{N: 64, M: 32, T: 12}
	relModQ256  = &ModQRelation{N: 96, M: 48, T: 20}
	relGF256128 = &GF256Relation{N: 48, M: 24, T: 16}
	relGF256192 = &GF256Relation{N: 64, M: 32, T: 24}
)

// Standard parameter sets.
var (
	ModQ_L16_128 = &ParamSet{
		Name: "ModQ-L16-128", ID: 0x01, Lambda: 128,
		Parties: 16, Repetitions: 34, Hash: SHAKE128, Relation: relModQ128,
	}
	ModQ_L256_128 = &ParamSet{
		Name: "ModQ-L256-128", ID: 0x02, Lambda: 128,
		Parties: 256, Repetitions: 17, Hash: SHAKE128, Relation: relModQ128,
	}
	ModQ_L32_256 = &ParamSet{
		Name: "ModQ-L32-256", ID: 0x03, Lambda: 256,
		Parties: 32, Repetitions: 54, Hash: SHAKE256, Relation: relModQ256,
	}
	GF256_L16_128 = &ParamSet{
		Name: "GF256-L16-128", ID: 0x04, Lambda: 128,
		Parties: 16, Repetitions: 34, Hash: SHAKE128, Relation: relGF256128,
	}
	GF256_L16_128_B2b = &ParamSet{
		Name: "GF256-L16-128-B2b", ID: 0x05, Lambda: 128,
		Parties: 16, Repetitions: 34, Hash: BLAKE2bXOF, Relation: relGF256128,
	}
	GF256_L256_192 = &ParamSet{
		Name: "GF256-L256-192", ID: 0x06, Lambda: 192,
		Parties: 256, Repetitions: 25, Hash: SHAKE256, Relation: relGF256192,
	}
)

// Weak parameter sets, for research and tests. They do not provide
// adequate security.
var (
	Toy_ModQ_L8 = &ParamSet{
		Name: "Toy-ModQ-L8", ID: 0x0E, Lambda: 128,
		Parties: 8, Repetitions: 2, Hash: SHAKE128,
		Relation: &ModQRelation{N: 8, M: 4, T: 4}, Weak: true,
	}
	Toy_GF256_L4 = &ParamSet{
		Name: "Toy-GF256-L4", ID: 0x0F, Lambda: 128,
		Parties: 4, Repetitions: 3, Hash: SHAKE128,
		Relation: &GF256Relation{N: 8, M: 4, T: 4}, Weak: true,
	}
)

var builtin_params = []*ParamSet{
	ModQ_L16_128,
	ModQ_L256_128,
	ModQ_L32_256,
	GF256_L16_128,
	GF256_L16_128_B2b,
	GF256_L256_192,
	Toy_ModQ_L8,
	Toy_GF256_L4,
}

// Get all built-in parameter sets (standard and weak).
func ParamSets() []*ParamSet {
	r := make([]*ParamSet, len(builtin_params))
	copy(r, builtin_params)
	return r
}

// Get a built-in parameter set by name.
func ParamSetByName(name string) (*ParamSet, error) {
	for _, p := range builtin_params {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, errors.Wrapf(ErrUnknownParams, "no parameter set named %q", name)
}

// Get a built-in parameter set by identifier.
func ParamSetByID(id uint8) (*ParamSet, error) {
	for _, p := range builtin_params {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, errors.Wrapf(ErrUnknownParams, "no parameter set with identifier %d", id)
}
