package merkle

import (
	"bytes"
	"math/bits"

	"github.com/zatoichi-labs/plasma/errors"
	"golang.org/x/crypto/sha3"
)

const (
	// Depth is the number of levels between a leaf and the root.
	Depth = 64
	// HashSize is the size of every node hash.
	HashSize = 32
)

// ZeroHashes[h] is the root of an empty subtree of height h. ZeroHashes[0]
// is the empty leaf and ZeroHashes[Depth] the root of an empty tree.
var ZeroHashes [Depth + 1][]byte

func init() {
	ZeroHashes[0] = make([]byte, HashSize)
	for h := 1; h <= Depth; h++ {
		ZeroHashes[h] = Hash(ZeroHashes[h-1], ZeroHashes[h-1])
	}
}

// Hash returns the Keccak-256 digest of the concatenated chunks.
func Hash(chunks ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, c := range chunks {
		// Writing to a hash never fails.
		_, _ = h.Write(c)
	}
	return h.Sum(nil)
}

// LeafHash returns the hash stored in the leaf for given leaf data.
func LeafHash(leafData []byte) []byte {
	return Hash(leafData)
}

// Branch is the list of siblings on the path from a leaf to the root.
// Siblings equal to the empty subtree of their level are not stored: bit h
// of Mask is set when the sibling at level h is present in Siblings.
// Siblings are ordered from the leaf level up.
type Branch struct {
	Mask     uint64   `protobuf:"varint,1,opt,name=mask,proto3" json:"mask"`
	Siblings [][]byte `protobuf:"bytes,2,rep,name=siblings,proto3" json:"siblings"`
}

// Validate returns an error if the number of siblings does not match the
// mask or any of them is not a valid hash.
func (b Branch) Validate() error {
	if n := bits.OnesCount64(b.Mask); n != len(b.Siblings) {
		return errors.Wrapf(errors.ErrInput, "mask declares %d siblings, got %d", n, len(b.Siblings))
	}
	for i, s := range b.Siblings {
		if len(s) != HashSize {
			return errors.Wrapf(errors.ErrInput, "sibling %d: invalid hash size %d", i, len(s))
		}
	}
	return nil
}

// ComputeRoot returns the root of a tree having leafHash under tokenID and
// the given branch on its path.
func ComputeRoot(tokenID uint64, leafHash []byte, branch Branch) ([]byte, error) {
	if len(leafHash) != HashSize {
		return nil, errors.Wrapf(errors.ErrInput, "invalid leaf hash size %d", len(leafHash))
	}
	if err := branch.Validate(); err != nil {
		return nil, errors.Wrap(err, "branch")
	}

	node := leafHash
	next := 0
	for h := uint(0); h < Depth; h++ {
		sibling := ZeroHashes[h]
		if branch.Mask&(1<<h) != 0 {
			sibling = branch.Siblings[next]
			next++
		}
		if tokenID&(1<<h) != 0 {
			node = Hash(sibling, node)
		} else {
			node = Hash(node, sibling)
		}
	}
	return node, nil
}

// VerifyInclusion returns true if the leaf of tokenID holds the hash of
// leafData in the tree with given root. An error is returned only for a
// malformed branch.
func VerifyInclusion(root []byte, tokenID uint64, leafData []byte, branch Branch) (bool, error) {
	got, err := ComputeRoot(tokenID, LeafHash(leafData), branch)
	if err != nil {
		return false, err
	}
	return bytes.Equal(got, root), nil
}

// VerifyExclusion returns true if the leaf of tokenID is empty in the tree
// with given root, meaning the token was not transferred in that block.
func VerifyExclusion(root []byte, tokenID uint64, branch Branch) (bool, error) {
	got, err := ComputeRoot(tokenID, ZeroHashes[0], branch)
	if err != nil {
		return false, err
	}
	return bytes.Equal(got, root), nil
}
