package mpcith

import (
	"io"

	"github.com/pkg/errors"
)

// Configuration errors. These are reported when a parameter set is
// validated (NewScheme), never while signing or verifying with a
// validated set, except for ErrChallengeExhausted which denotes a
// parameter set whose number of parties makes index sampling fail.
var (
	ErrInvalidParams      = errors.New("mpcith: invalid parameter set")
	ErrUnknownParams      = errors.New("mpcith: unknown parameter set")
	ErrWeakParams         = errors.New("mpcith: weak parameter set not allowed here")
	ErrStrongParams       = errors.New("mpcith: standard parameter set not allowed here")
	ErrChallengeExhausted = errors.New("mpcith: challenge sampling exhausted")
)

// Errors on caller-provided data.
var (
	ErrInvalidSigningKey   = errors.New("mpcith: invalid signing key")
	ErrInvalidVerifyingKey = errors.New("mpcith: invalid verifying key")
	ErrRandomSource        = errors.New("mpcith: random source failure")
)

// Report a relation contract violation. This is an integration bug (the
// relation implementation does not honour its advertised sizes), not a
// condition that an attacker can trigger.
func relation_contract_panic(rel Relation, what string, got int, want int) {
	panic(errors.Errorf("mpcith: relation %q: %s has size %d (expected %d)",
		rel.Name(), what, got, want))
}

// Fill dst from a share or challenge stream. These streams are XOF
// outputs and never fail; a short read is a caller contract violation.
func read_stream(r io.Reader, dst []byte) {
	if _, err := io.ReadFull(r, dst); err != nil {
		panic(errors.Wrap(err, "mpcith: short read on share or challenge stream"))
	}
}
