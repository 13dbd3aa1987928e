package mpcith

// Party commitments:
//
//	XOF(salt || u16(rep) || u16(party) || seed || aux || domain_commit)
//
// squeezed to the digest size. aux is empty for all parties except the
// lead party.

// Compute one commitment into dst.
func commit(h HashKind, salt []byte, rep int, party int, seed []byte, aux []byte, dst []byte) {
	x := new_xof(h)
	x.Write(salt)
	write_u16(x, rep)
	write_u16(x, party)
	x.Write(seed)
	x.Write(aux)
	write_tag(x, domain_commit)
	x.Read(dst)
}

// Compute four commitments at once; lane k uses parties[k], seeds[k],
// auxs[k] and writes into dst[k]. This is bit-identical to four calls to
// commit().
func commit_x4(x4 *xofX4, salt []byte, rep int, parties [4]int,
	seeds [4][]byte, auxs [4][]byte, dst [4][]byte) {

	x4.reset()
	x4.write_all(salt)
	for lane := 0; lane < 4; lane++ {
		x4.write_u16(lane, rep)
		x4.write_u16(lane, parties[lane])
		x4.write(lane, seeds[lane])
		x4.write(lane, auxs[lane])
	}
	x4.write_tag(domain_commit)
	x4.read(dst)
}

// Commit to the parties of one repetition. seeds[i] and auxs[i] are the
// seed and auxiliary data of party i; entries for the party at index
// skip (if any, -1 for none) are not computed and left nil. Output
// digests are returned in party order.
func commit_parties(h HashKind, salt []byte, rep int, seeds [][]byte, auxs [][]byte,
	skip int, digestSize int, batched bool) [][]byte {

	n := len(seeds)
	buf := make([]byte, n*digestSize)
	out := make([][]byte, n)
	todo := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if i == skip {
			continue
		}
		out[i] = buf[i*digestSize : (i+1)*digestSize]
		todo = append(todo, i)
	}
	k := 0
	if batched {
		x4 := new_xof_x4(h)
		for ; k+3 < len(todo); k += 4 {
			var parties [4]int
			var sd, ax, dst [4][]byte
			for lane := 0; lane < 4; lane++ {
				i := todo[k+lane]
				parties[lane] = i
				sd[lane] = seeds[i]
				ax[lane] = auxs[i]
				dst[lane] = out[i]
			}
			commit_x4(x4, salt, rep, parties, sd, ax, dst)
		}
	}
	for ; k < len(todo); k++ {
		i := todo[k]
		commit(h, salt, rep, i, seeds[i], auxs[i], out[i])
	}
	return out
}
