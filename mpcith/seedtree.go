package mpcith

// Seed tree (GGM tree).
//
// A tree for L leaves (L a power of two, at least 2) has 2*L-1 nodes,
// stored in a single arena, root at index 0; node i has children 2*i+1
// (left) and 2*i+2 (right), and leaf j is node L-1+j. Children are
// computed together from their parent:
//
//	XOF(salt || u32(i) || node[i] || domain_tree) -> left || right
//
// Every slot also records whether its seed is known. A tree rebuilt from
// an authentication path keeps the hidden leaf and its ancestors unknown;
// such slots are never read.

type seedTree struct {
	seedLen int
	leaves  int
	depth   int
	nodes   []byte
	known   []bool
}

// Get log2(n) for n a power of two; returns -1 if n is not a power of two
// or lower than 2.
func log2_exact(n int) int {
	if n < 2 || (n&(n-1)) != 0 {
		return -1
	}
	d := 0
	for (1 << d) < n {
		d++
	}
	return d
}

// Create an empty tree.
func newSeedTree(leaves int, seedLen int) *seedTree {
	depth := log2_exact(leaves)
	if depth < 0 {
		panic("mpcith: number of tree leaves must be a power of two (>= 2)")
	}
	return &seedTree{
		seedLen: seedLen,
		leaves:  leaves,
		depth:   depth,
		nodes:   make([]byte, (2*leaves-1)*seedLen),
		known:   make([]bool, 2*leaves-1),
	}
}

// Number of nodes in the tree.
func (t *seedTree) size() int {
	return len(t.known)
}

// Get the storage slot for node i.
func (t *seedTree) slot(i int) []byte {
	if i < 0 || i >= t.size() {
		panic("mpcith: seed tree node index out of range")
	}
	return t.nodes[i*t.seedLen : (i+1)*t.seedLen]
}

// Get node i; it MUST be known.
func (t *seedTree) node(i int) []byte {
	if !t.known[i] {
		panic("mpcith: read of a withheld seed tree node")
	}
	return t.slot(i)
}

// Set node i.
func (t *seedTree) set(i int, seed []byte) {
	if len(seed) != t.seedLen {
		panic("mpcith: invalid seed length")
	}
	copy(t.slot(i), seed)
	t.known[i] = true
}

// Get leaf j. The second returned value is false if the leaf is not known.
func (t *seedTree) leaf(j int) ([]byte, bool) {
	if j < 0 || j >= t.leaves {
		panic("mpcith: seed tree leaf index out of range")
	}
	i := t.leaves - 1 + j
	if !t.known[i] {
		return nil, false
	}
	return t.slot(i), true
}

// Index of the sibling of node i (i > 0).
func tree_sibling(i int) int {
	if (i & 1) != 0 {
		return i + 1
	}
	return i - 1
}

// Compute the children of the listed parent nodes, which must all be known.
func (t *seedTree) expand_nodes(h HashKind, salt []byte, parents []int, batched bool) {
	sl := t.seedLen
	k := 0
	if batched {
		x4 := new_xof_x4(h)
		for ; k+3 < len(parents); k += 4 {
			x4.reset()
			var dst [4][]byte
			for lane := 0; lane < 4; lane++ {
				i := parents[k+lane]
				x4.write(lane, salt)
				x4.write_u32(lane, i)
				x4.write(lane, t.node(i))
				dst[lane] = t.nodes[(2*i+1)*sl : (2*i+3)*sl]
			}
			x4.write_tag(domain_tree)
			x4.read(dst)
			for lane := 0; lane < 4; lane++ {
				i := parents[k+lane]
				t.known[2*i+1] = true
				t.known[2*i+2] = true
			}
		}
	}
	x := new_xof(h)
	for ; k < len(parents); k++ {
		i := parents[k]
		x.Reset()
		x.Write(salt)
		write_u32(x, i)
		x.Write(t.node(i))
		write_tag(x, domain_tree)
		x.Read(t.nodes[(2*i+1)*sl : (2*i+3)*sl])
		t.known[2*i+1] = true
		t.known[2*i+2] = true
	}
}

// Expand all known internal nodes, level by level.
func (t *seedTree) expand_known(h HashKind, salt []byte, batched bool) {
	parents := make([]int, 0, t.leaves>>1)
	for lvl := 0; lvl < t.depth; lvl++ {
		parents = parents[:0]
		for i := (1 << lvl) - 1; i < (2<<lvl)-1; i++ {
			if t.known[i] {
				parents = append(parents, i)
			}
		}
		t.expand_nodes(h, salt, parents, batched)
	}
}

// Build the complete tree from a root seed.
func expand_tree(h HashKind, root []byte, salt []byte, leaves int, batched bool) *seedTree {
	t := newSeedTree(leaves, len(root))
	t.set(0, root)
	t.expand_known(h, salt, batched)
	return t
}

// Get the authentication path that reveals all leaves except the hidden
// one: for each depth from 1 to log2(L), the sibling of the ancestor of
// the hidden leaf at that depth. The tree MUST be complete. The returned
// slices point into a fresh buffer.
func (t *seedTree) path(hidden int) [][]byte {
	if hidden < 0 || hidden >= t.leaves {
		panic("mpcith: hidden leaf index out of range")
	}
	buf := make([]byte, t.depth*t.seedLen)
	p := make([][]byte, t.depth)
	v := t.leaves - 1 + hidden
	for d := t.depth; d >= 1; d-- {
		s := buf[(d-1)*t.seedLen : d*t.seedLen]
		copy(s, t.node(tree_sibling(v)))
		p[d-1] = s
		v = (v - 1) >> 1
	}
	return p
}

// Expand the tree from the root seed and extract the authentication path
// for the hidden leaf.
func derive_partial(h HashKind, root []byte, salt []byte, leaves int, hidden int, batched bool) (*seedTree, [][]byte) {
	t := expand_tree(h, root, salt, leaves, batched)
	return t, t.path(hidden)
}

// Rebuild all leaves except the hidden one from an authentication path.
// The path holds log2(L) seeds, ordered by increasing depth.
func reconstruct_partial(h HashKind, path [][]byte, salt []byte, leaves int, hidden int, batched bool) *seedTree {
	if len(path) == 0 {
		panic("mpcith: empty authentication path")
	}
	t := newSeedTree(leaves, len(path[0]))
	if len(path) != t.depth {
		panic("mpcith: authentication path length mismatch")
	}
	if hidden < 0 || hidden >= leaves {
		panic("mpcith: hidden leaf index out of range")
	}

	// Walk down from the root towards the hidden leaf; at each depth, the
	// node off the path is the one provided by the prover.
	v := 0
	for d := 1; d <= t.depth; d++ {
		bit := (hidden >> (t.depth - d)) & 1
		next := 2*v + 1 + bit
		t.set(tree_sibling(next), path[d-1])
		v = next
	}
	t.expand_known(h, salt, batched)
	return t
}
