package proof

import (
	"github.com/zatoichi-labs/plasma/errors"
	"github.com/zatoichi-labs/plasma/merkle"
)

// Block collects the transfers of a single child chain block. Sealing the
// block returns its commitment root and sets the inclusion branch of every
// collected transfer. A block holds at most one transfer per token.
type Block struct {
	height    int64
	tree      *merkle.Tree
	transfers map[uint64]*Transfer
}

// NewBlock returns an empty block of given height.
func NewBlock(height int64) *Block {
	return &Block{
		height:    height,
		tree:      merkle.NewTree(),
		transfers: make(map[uint64]*Transfer),
	}
}

// Height returns the block height.
func (b *Block) Height() int64 {
	return b.height
}

// Add includes the transfer in the block.
func (b *Block) Add(t *Transfer) error {
	if t.Height != b.height {
		return errors.Wrapf(errors.ErrInput, "transfer height %d in block %d", t.Height, b.height)
	}
	if _, ok := b.transfers[t.TokenID]; ok {
		return errors.Wrapf(errors.ErrDuplicate, "token %d", t.TokenID)
	}
	b.transfers[t.TokenID] = t
	b.tree.Set(t.TokenID, t.LeafData())
	return nil
}

// Seal returns the block root and updates the branch of every transfer.
func (b *Block) Seal() []byte {
	for id, t := range b.transfers {
		t.Branch = b.tree.Branch(id)
	}
	return b.tree.Root()
}

// Exclusion returns the branch proving that the token was not transferred
// in this block. ErrDuplicate is returned if it was.
func (b *Block) Exclusion(tokenID uint64) (merkle.Branch, error) {
	if _, ok := b.transfers[tokenID]; ok {
		return merkle.Branch{}, errors.Wrapf(errors.ErrDuplicate, "token %d transferred", tokenID)
	}
	return b.tree.Branch(tokenID), nil
}
