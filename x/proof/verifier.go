package proof

import (
	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/crypto"
	"github.com/zatoichi-labs/plasma/errors"
	"github.com/zatoichi-labs/plasma/merkle"
)

// RootReader gives access to the committed block roots.
type RootReader interface {
	// Root returns the root committed at given height or ErrNotFound.
	Root(db plasma.ReadOnlyKVStore, height int64) ([]byte, error)
}

// Origin is the deposit a history starts from.
type Origin struct {
	Owner  plasma.Address
	Height int64
}

// Verifier checks transfers against the committed roots.
type Verifier struct {
	roots RootReader
	sigs  crypto.SignatureVerifier
}

// NewVerifier returns a verifier reading roots from given reader and
// checking signatures with given verifier.
func NewVerifier(roots RootReader, sigs crypto.SignatureVerifier) *Verifier {
	return &Verifier{roots: roots, sigs: sigs}
}

// VerifyInclusion returns ErrNotIncluded unless leafData is stored under
// tokenID in the tree with given root.
func (v *Verifier) VerifyInclusion(root []byte, tokenID uint64, leafData []byte, branch merkle.Branch) error {
	ok, err := merkle.VerifyInclusion(root, tokenID, leafData, branch)
	if err != nil {
		return errors.WithKind(ErrNotIncluded, err)
	}
	if !ok {
		return errors.Wrapf(ErrNotIncluded, "token %d", tokenID)
	}
	return nil
}

// VerifyTransfer checks the signature of a single transfer and its
// inclusion in the block committed at the transfer height. A height without
// a commitment fails with ErrNotIncluded and a malformed transfer with
// ErrHistoryBroken.
func (v *Verifier) VerifyTransfer(db plasma.ReadOnlyKVStore, t *Transfer) error {
	if t.PubKey == nil || len(t.Signature) == 0 {
		return errors.Wrap(ErrBadSignature, "transfer not signed")
	}
	if err := t.Validate(); err != nil {
		return errors.WithKind(ErrHistoryBroken, errors.Wrap(err, "malformed transfer"))
	}
	if !t.PubKey.Address().Equals(t.From) {
		return errors.Wrapf(ErrBadSignature, "public key does not belong to %s", t.From)
	}
	if err := v.sigs.Verify(t.PubKey, t.SignBytes(), t.Signature); err != nil {
		return errors.WithKind(ErrBadSignature, err)
	}

	root, err := v.roots.Root(db, t.Height)
	switch {
	case errors.ErrNotFound.Is(err):
		return errors.Wrapf(ErrNotIncluded, "no commitment at height %d", t.Height)
	case err != nil:
		return errors.Wrap(err, "cannot read commitment")
	}
	return v.VerifyInclusion(root, t.TokenID, t.LeafData(), t.Branch)
}

// VerifyHistory walks the transfers of a token starting at its deposit and
// checks that the last owner is claimedOwner. It returns the height the
// token can be exited at: the height of the last transfer, or the deposit
// height for an empty history. Failures are returned as *HistoryError.
func (v *Verifier) VerifyHistory(
	db plasma.ReadOnlyKVStore,
	tokenID uint64,
	origin Origin,
	transfers []Transfer,
	claimedOwner plasma.Address,
) (int64, error) {
	owner := origin.Owner
	height := origin.Height

	for i := range transfers {
		t := &transfers[i]
		fail := func(err error) (int64, error) {
			return 0, &HistoryError{TokenID: tokenID, Index: i, Err: err}
		}

		if t.TokenID != tokenID {
			return fail(errors.Wrapf(ErrHistoryBroken, "transfer of token %d", t.TokenID))
		}
		if t.Height <= height {
			return fail(errors.Wrapf(ErrHistoryBroken, "height %d not above %d", t.Height, height))
		}
		if !t.From.Equals(owner) {
			return fail(errors.Wrapf(ErrHistoryBroken, "sender %s is not the owner %s", t.From, owner))
		}
		if err := v.VerifyTransfer(db, t); err != nil {
			return fail(err)
		}
		owner = t.To
		height = t.Height
	}

	if !owner.Equals(claimedOwner) {
		return 0, &HistoryError{
			TokenID: tokenID,
			Index:   len(transfers) - 1,
			Err:     errors.Wrapf(ErrOwnerMismatch, "owner is %s, claimed %s", owner, claimedOwner),
		}
	}
	return height, nil
}
