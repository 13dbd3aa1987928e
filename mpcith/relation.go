package mpcith

import (
	"io"
)

// Relation is the NP relation whose witness knowledge is proven. The
// protocol core treats shares, broadcast values and public keys as
// opaque byte strings of fixed sizes; all algebra is delegated here.
//
// Witness shares live in an additive group (AddShare, SubShare); party
// outputs live in another additive group (AddBroadcast, SubBroadcast).
// For any valid witness x split as x = s_0 + s_1 + ... + s_{L-1}:
//
//	Σ_i c.Evaluate(s_i, i == 0) == c.Target()
//
// for every challenge c. Evaluate MUST be linear in the share, with the
// constant term contributed by the lead party only.
//
// All methods must accept arbitrary bytes for shares and broadcast values
// (verification feeds attacker-controlled data) without panicking, and
// must not branch on share contents.
type Relation interface {
	// Name returns a human-readable identifier.
	Name() string

	// PublicKeySize returns the size of the encoded public instance.
	PublicKeySize() int

	// WitnessSize returns the size of an encoded witness share (this is
	// also the size of the auxiliary share carried in signatures).
	WitnessSize() int

	// BroadcastSize returns the size of one party's encoded output.
	BroadcastSize() int

	// GenerateInstance produces a public instance and a matching
	// witness, using the provided randomness.
	GenerateInstance(r io.Reader) (pub []byte, wit []byte, err error)

	// ParseInstance decodes a public instance.
	ParseInstance(pub []byte) (Instance, error)

	// RandomShare fills dst with a uniformly random share, read from r.
	// It panics if r fails.
	RandomShare(r io.Reader, dst []byte)

	// AddShare sets dst = a + b.
	AddShare(dst, a, b []byte)

	// SubShare sets dst = a - b.
	SubShare(dst, a, b []byte)

	// ValidShare returns true if the share encoding is canonical.
	ValidShare(s []byte) bool

	// AddBroadcast sets dst = a + b on party outputs.
	AddBroadcast(dst, a, b []byte)

	// SubBroadcast sets dst = a - b on party outputs.
	SubBroadcast(dst, a, b []byte)
}

// Instance is a decoded public instance of a relation.
type Instance interface {
	// ExpandChallenge reads one first-round challenge from the
	// provided stream. It panics if the stream fails.
	ExpandChallenge(r io.Reader) Challenge
}

// Challenge is a first-round challenge, folded into the instance so that
// party outputs can be evaluated cheaply.
type Challenge interface {
	// Evaluate writes into dst the output of a party holding the
	// given share; lead is true for party 0. The number of written
	// bytes is returned.
	Evaluate(dst []byte, share []byte, lead bool) int

	// Target writes into dst the expected sum of all party outputs.
	// The number of written bytes is returned.
	Target(dst []byte) int
}
