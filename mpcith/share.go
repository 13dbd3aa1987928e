package mpcith

// Additive sharing of the witness over the leaves of a seed tree.
//
// For parties 1 to L-1, the share is expanded from the party leaf seed:
//
//	RandomShare(XOF(leaf || salt || u16(rep) || u16(party) || domain_share))
//
// Party 0 (the lead party) holds the auxiliary share
//
//	aux = witness - Σ_{i>=1} share_i
//
// so that the shares sum to the witness. The auxiliary share is the only
// share-derived value that must be transmitted; all others are
// reproducible from the seeds alone.

// Expand the share of party i >= 1 from its leaf seed.
func party_share(h HashKind, rel Relation, leaf []byte, salt []byte,
	rep int, party int, dst []byte) {

	x := new_xof(h)
	x.Write(leaf)
	x.Write(salt)
	write_u16(x, rep)
	write_u16(x, party)
	write_tag(x, domain_share)
	rel.RandomShare(x, dst)
}

// Split a witness into L shares, using the leaves of a complete tree.
// shares[0] is the auxiliary share.
func split_witness(h HashKind, rel Relation, wit []byte, t *seedTree,
	salt []byte, rep int) [][]byte {

	ws := rel.WitnessSize()
	if len(wit) != ws {
		relation_contract_panic(rel, "witness", len(wit), ws)
	}
	buf := make([]byte, t.leaves*ws)
	shares := make([][]byte, t.leaves)
	for i := range shares {
		shares[i] = buf[i*ws : (i+1)*ws]
	}
	acc := shares[0]
	copy(acc, wit)
	for i := 1; i < t.leaves; i++ {
		leaf, ok := t.leaf(i)
		if !ok {
			panic("mpcith: split over an incomplete seed tree")
		}
		party_share(h, rel, leaf, salt, rep, i, shares[i])
		rel.SubShare(acc, acc, shares[i])
	}
	return shares
}

// Rebuild the shares of all parties except the hidden one, from a partial
// tree and the auxiliary share (ignored if the hidden party is 0). The
// entry for the hidden party is nil.
func open_shares(h HashKind, rel Relation, t *seedTree, aux []byte,
	salt []byte, rep int, hidden int) [][]byte {

	ws := rel.WitnessSize()
	shares := make([][]byte, t.leaves)
	buf := make([]byte, t.leaves*ws)
	for i := 0; i < t.leaves; i++ {
		if i == hidden {
			continue
		}
		shares[i] = buf[i*ws : (i+1)*ws]
		if i == 0 {
			copy(shares[0], aux)
			continue
		}
		leaf, ok := t.leaf(i)
		if !ok {
			panic("mpcith: opened party has no seed")
		}
		party_share(h, rel, leaf, salt, rep, i, shares[i])
	}
	return shares
}
