package mpcith

// Fiat-Shamir transcript hashes. Both hashes absorb per-repetition,
// per-party values in (repetition, party) order, from buffers indexed by
// repetition; the result does not depend on how repetitions were
// scheduled.

// hash1 = XOF(vkey || salt || com[0][0] || ... || com[tau-1][L-1] || domain_hash1)
func compute_hash1(h HashKind, vkey []byte, salt []byte, coms [][][]byte, dst []byte) {
	x := new_xof(h)
	x.Write(vkey)
	x.Write(salt)
	for _, rc := range coms {
		for _, c := range rc {
			x.Write(c)
		}
	}
	write_tag(x, domain_hash1)
	x.Read(dst)
}

// hash2 = XOF(hash1 || bc[0][0] || ... || bc[tau-1][L-1] || domain_hash2)
func compute_hash2(h HashKind, hash1 []byte, bcs [][][]byte, dst []byte) {
	x := new_xof(h)
	x.Write(hash1)
	for _, rb := range bcs {
		for _, b := range rb {
			x.Write(b)
		}
	}
	write_tag(x, domain_hash2)
	x.Read(dst)
}

// Derive the tree root seed of a repetition from the signing seed.
func derive_root_seed(h HashKind, mseed []byte, salt []byte, rep int, dst []byte) {
	x := new_xof(h)
	x.Write(mseed)
	x.Write(salt)
	write_u16(x, rep)
	write_tag(x, domain_root)
	x.Read(dst)
}
