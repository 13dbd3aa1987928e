package mpcith

// MPC simulation: each party evaluates the challenge-folded relation on
// its own share; the broadcast of a repetition is the list of all party
// outputs, whose sum must equal the relation target.

// Evaluate one party and check the relation contract on the output size.
func eval_party(rel Relation, c Challenge, share []byte, lead bool, dst []byte) {
	if n := c.Evaluate(dst, share, lead); n != len(dst) {
		relation_contract_panic(rel, "party output", n, len(dst))
	}
}

// Get the relation target for a challenge.
func eval_target(rel Relation, c Challenge) []byte {
	bs := rel.BroadcastSize()
	t := make([]byte, bs)
	if n := c.Target(t); n != bs {
		relation_contract_panic(rel, "target", n, bs)
	}
	return t
}

// Run all parties of one repetition. The outputs are returned in party
// order, along with their sum.
func compute_broadcast(rel Relation, c Challenge, shares [][]byte) ([][]byte, []byte) {
	bs := rel.BroadcastSize()
	buf := make([]byte, len(shares)*bs)
	out := make([][]byte, len(shares))
	total := make([]byte, bs)
	for i := range shares {
		out[i] = buf[i*bs : (i+1)*bs]
		eval_party(rel, c, shares[i], i == 0, out[i])
		if i == 0 {
			copy(total, out[0])
		} else {
			rel.AddBroadcast(total, total, out[i])
		}
	}
	return out, total
}

// Run all parties except the hidden one (shares[hidden] is ignored), and
// infer the output that the hidden party must have produced for the sum
// to equal the expected total. The returned list holds the opened outputs
// in party order, with a nil entry for the hidden party; the second value
// is the inferred output of the hidden party.
func recompute_from_partial(rel Relation, c Challenge, shares [][]byte,
	hidden int, total []byte) ([][]byte, []byte) {

	bs := rel.BroadcastSize()
	buf := make([]byte, len(shares)*bs)
	out := make([][]byte, len(shares))
	cand := make([]byte, bs)
	copy(cand, total)
	for i := range shares {
		if i == hidden {
			continue
		}
		out[i] = buf[i*bs : (i+1)*bs]
		eval_party(rel, c, shares[i], i == 0, out[i])
		rel.SubBroadcast(cand, cand, out[i])
	}
	return out, cand
}
