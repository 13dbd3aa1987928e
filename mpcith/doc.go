// This package implements a family of MPC-in-the-head signature schemes,
// obtained by applying the Fiat-Shamir transform to a five-move
// zero-knowledge proof of knowledge of a witness for a public relation.
//
// WARNING: the relations shipped with this package ([ModQRelation] and
// [GF256Relation]) are linear, and a witness can be recovered from the
// public key by solving a linear system. They exist to exercise the
// protocol machinery (seed trees, additive sharing, commitments, the
// simulated multiparty computation and the byte-exact encoding). A
// deployment must plug in a hard relation through the [Relation]
// interface.
//
// For each of tau repetitions, the signer splits the witness into L
// additive shares, one per virtual party. The shares of parties 1 to L-1
// are derived from the leaves of a binary seed tree; party 0 holds an
// auxiliary share that makes the sum equal to the witness. The signer
// commits to every party, derives a first challenge from the message and
// the commitments, evaluates the relation on each share, and derives from
// the party outputs a second challenge which selects, in each repetition,
// one party that remains hidden. The signature reveals the seed tree
// except for the hidden leaf (an authentication path of log2(L) seeds),
// the commitment and output of the hidden party, and the auxiliary share
// when party 0 is opened. The verifier re-runs all opened parties,
// infers the output of the hidden party, and accepts only if both
// transcript hashes are reproduced exactly.
//
// Parameter sets are described by [ParamSet]; built-in presets are
// available with [ParamSets], [ParamSetByName] and [ParamSetByID]. Some
// presets are flagged as weak (very few repetitions); they are convenient
// for tests but provide no security, and their use is segregated at the
// API level: [Sign] and [Verify] accept only standard sets, while
// [SignWeak] and [VerifyWeak] accept only weak sets. Key pairs are
// generated with [KeyGen]. Each key and signature has a fixed size for a
// given parameter set.
//
// A [Scheme] binds a parameter set (built-in or custom) to a random
// source, a logger (github.com/rs/zerolog), and scheduling options;
// repetitions can be processed concurrently without changing any output
// byte. [KATContext] exposes the scheme with the calling convention of
// the NIST PQC known-answer test harness, driven by a [CTRDRBG].
package mpcith
