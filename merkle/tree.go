package merkle

// Tree is an in-memory sparse Merkle tree. It is used to build block
// commitments and proofs outside of the chain, for example by an operator
// or in tests. Tree is not safe for concurrent use.
type Tree struct {
	leaves map[uint64][]byte
	// levels[h] holds all non-empty nodes of level h by their index. It
	// is rebuilt lazily after a modification.
	levels []map[uint64][]byte
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{leaves: make(map[uint64][]byte)}
}

// Set stores the hash of leafData under tokenID.
func (t *Tree) Set(tokenID uint64, leafData []byte) {
	t.leaves[tokenID] = LeafHash(leafData)
	t.levels = nil
}

// Remove empties the leaf of tokenID.
func (t *Tree) Remove(tokenID uint64) {
	delete(t.leaves, tokenID)
	t.levels = nil
}

// Len returns the number of non-empty leaves.
func (t *Tree) Len() int {
	return len(t.leaves)
}

// Root returns the root hash of the tree.
func (t *Tree) Root() []byte {
	t.build()
	if root, ok := t.levels[Depth][0]; ok {
		return root
	}
	return ZeroHashes[Depth]
}

// Branch returns the proof for the leaf of tokenID. The same branch proves
// inclusion of a set leaf and exclusion of an empty one.
func (t *Tree) Branch(tokenID uint64) Branch {
	t.build()
	var b Branch
	for h := uint(0); h < Depth; h++ {
		idx := tokenID >> h
		if s, ok := t.levels[h][idx^1]; ok {
			b.Mask |= 1 << h
			b.Siblings = append(b.Siblings, s)
		}
	}
	return b
}

func (t *Tree) build() {
	if t.levels != nil {
		return
	}
	levels := make([]map[uint64][]byte, Depth+1)
	levels[0] = make(map[uint64][]byte, len(t.leaves))
	for id, h := range t.leaves {
		levels[0][id] = h
	}
	for h := 0; h < Depth; h++ {
		parents := make(map[uint64][]byte, len(levels[h]))
		for idx := range levels[h] {
			p := idx >> 1
			if _, ok := parents[p]; ok {
				continue
			}
			left, ok := levels[h][p<<1]
			if !ok {
				left = ZeroHashes[h]
			}
			right, ok := levels[h][p<<1|1]
			if !ok {
				right = ZeroHashes[h]
			}
			parents[p] = Hash(left, right)
		}
		levels[h+1] = parents
	}
	t.levels = levels
}
