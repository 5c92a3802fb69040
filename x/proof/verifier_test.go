package proof

import (
	"testing"

	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/crypto"
	"github.com/zatoichi-labs/plasma/errors"
	"github.com/zatoichi-labs/plasma/merkle"
	"github.com/zatoichi-labs/plasma/plasmatest"
	"github.com/zatoichi-labs/plasma/plasmatest/assert"
	"github.com/zatoichi-labs/plasma/store"
)

// roots is an in-memory RootReader.
type roots map[int64][]byte

func (r roots) Root(db plasma.ReadOnlyKVStore, height int64) ([]byte, error) {
	root, ok := r[height]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "height %d", height)
	}
	return root, nil
}

// commit seals a block with given transfers and records its root.
func (r roots) commit(t testing.TB, height int64, transfers ...*Transfer) {
	t.Helper()
	b := NewBlock(height)
	for _, tr := range transfers {
		if err := b.Add(tr); err != nil {
			t.Fatalf("cannot add transfer: %s", err)
		}
	}
	r[height] = b.Seal()
}

func mustSign(t testing.TB, key *crypto.PrivateKey, tokenID uint64, to plasma.Address, height int64) *Transfer {
	t.Helper()
	tr, err := SignTransfer(key, tokenID, to, height)
	if err != nil {
		t.Fatalf("cannot sign transfer: %s", err)
	}
	return tr
}

func TestVerifyTransfer(t *testing.T) {
	alice := plasmatest.NewKey()
	bob := plasmatest.NewKey()

	cases := map[string]struct {
		// build returns the transfer to verify and the known roots.
		build   func(t *testing.T) (*Transfer, roots)
		wantErr *errors.Error
	}{
		"valid transfer": {
			build: func(t *testing.T) (*Transfer, roots) {
				tr := mustSign(t, alice, 1, bob.PublicKey().Address(), 3)
				r := roots{}
				r.commit(t, 3, tr)
				return tr, r
			},
		},
		"tampered recipient": {
			build: func(t *testing.T) (*Transfer, roots) {
				tr := mustSign(t, alice, 1, bob.PublicKey().Address(), 3)
				r := roots{}
				r.commit(t, 3, tr)
				tr.To = alice.PublicKey().Address()
				return tr, r
			},
			wantErr: ErrBadSignature,
		},
		"public key of someone else": {
			build: func(t *testing.T) (*Transfer, roots) {
				tr := mustSign(t, alice, 1, bob.PublicKey().Address(), 3)
				tr.PubKey = bob.PublicKey()
				return tr, roots{}
			},
			wantErr: ErrBadSignature,
		},
		"missing signature": {
			build: func(t *testing.T) (*Transfer, roots) {
				tr := mustSign(t, alice, 1, bob.PublicKey().Address(), 3)
				tr.Signature = nil
				return tr, roots{}
			},
			wantErr: ErrBadSignature,
		},
		"no commitment at transfer height": {
			build: func(t *testing.T) (*Transfer, roots) {
				tr := mustSign(t, alice, 1, bob.PublicKey().Address(), 3)
				r := roots{}
				r.commit(t, 4, mustSign(t, alice, 1, bob.PublicKey().Address(), 4))
				return tr, r
			},
			wantErr: ErrNotIncluded,
		},
		"transfer not in the committed block": {
			build: func(t *testing.T) (*Transfer, roots) {
				tr := mustSign(t, alice, 1, bob.PublicKey().Address(), 3)
				other := mustSign(t, alice, 2, bob.PublicKey().Address(), 3)
				r := roots{}
				r.commit(t, 3, other)
				tr.Branch = other.Branch
				return tr, r
			},
			wantErr: ErrNotIncluded,
		},
		"malformed branch": {
			build: func(t *testing.T) (*Transfer, roots) {
				tr := mustSign(t, alice, 1, bob.PublicKey().Address(), 3)
				r := roots{}
				r.commit(t, 3, tr)
				tr.Branch.Mask = 1
				tr.Branch.Siblings = nil
				return tr, r
			},
			wantErr: ErrNotIncluded,
		},
		"invalid recipient": {
			build: func(t *testing.T) (*Transfer, roots) {
				tr := mustSign(t, alice, 1, plasma.Address("short"), 3)
				return tr, roots{}
			},
			wantErr: ErrHistoryBroken,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			tr, r := tc.build(t)
			v := NewVerifier(r, crypto.Ed25519Verifier{})
			err := v.VerifyTransfer(store.MemStore(), tr)
			assert.IsErr(t, tc.wantErr, err)
		})
	}
}

func TestVerifyHistory(t *testing.T) {
	alice := plasmatest.NewKey()
	bob := plasmatest.NewKey()
	carol := plasmatest.NewKey()
	aliceAddr := alice.PublicKey().Address()
	bobAddr := bob.PublicKey().Address()
	carolAddr := carol.PublicKey().Address()

	const token = 7
	origin := Origin{Owner: aliceAddr, Height: 2}

	// Alice deposited at height 2, sent the token to Bob at 4 and Bob to
	// Carol at 6.
	ab := mustSign(t, alice, token, bobAddr, 4)
	bc := mustSign(t, bob, token, carolAddr, 6)
	r := roots{}
	r.commit(t, 4, ab)
	r.commit(t, 5)
	r.commit(t, 6, bc)

	cases := map[string]struct {
		history    []Transfer
		owner      plasma.Address
		wantHeight int64
		wantErr    *errors.Error
		wantIndex  int
	}{
		"empty history exits at the deposit": {
			owner:      aliceAddr,
			wantHeight: 2,
		},
		"empty history of someone else": {
			owner:     bobAddr,
			wantErr:   ErrOwnerMismatch,
			wantIndex: -1,
		},
		"single transfer": {
			history:    []Transfer{*ab},
			owner:      bobAddr,
			wantHeight: 4,
		},
		"full history": {
			history:    []Transfer{*ab, *bc},
			owner:      carolAddr,
			wantHeight: 6,
		},
		"claimed by previous owner": {
			history:   []Transfer{*ab, *bc},
			owner:     bobAddr,
			wantErr:   ErrOwnerMismatch,
			wantIndex: 1,
		},
		"skipped step": {
			history:   []Transfer{*bc},
			owner:     carolAddr,
			wantErr:   ErrHistoryBroken,
			wantIndex: 0,
		},
		"reordered steps": {
			history:   []Transfer{*ab, *ab},
			owner:     bobAddr,
			wantErr:   ErrHistoryBroken,
			wantIndex: 1,
		},
		"transfer of another token": {
			history:   []Transfer{withToken(*ab, token+1)},
			owner:     bobAddr,
			wantErr:   ErrHistoryBroken,
			wantIndex: 0,
		},
		"transfer not above the deposit": {
			history:   []Transfer{*mustSign(t, alice, token, bobAddr, 2)},
			owner:     bobAddr,
			wantErr:   ErrHistoryBroken,
			wantIndex: 0,
		},
		"step never committed": {
			history:   []Transfer{*ab, *mustSign(t, bob, token, carolAddr, 9)},
			owner:     carolAddr,
			wantErr:   ErrNotIncluded,
			wantIndex: 1,
		},
		"step to a malformed recipient": {
			history:   []Transfer{*ab, *mustSign(t, bob, token, plasma.Address("short"), 6)},
			owner:     carolAddr,
			wantErr:   ErrHistoryBroken,
			wantIndex: 1,
		},
		"step signed by a stranger": {
			history:   []Transfer{*ab, withPubKey(*bc, carol.PublicKey())},
			owner:     carolAddr,
			wantErr:   ErrBadSignature,
			wantIndex: 1,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			v := NewVerifier(r, crypto.Ed25519Verifier{})
			height, err := v.VerifyHistory(store.MemStore(), token, origin, tc.history, tc.owner)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr == nil {
				assert.Equal(t, tc.wantHeight, height)
				return
			}
			herr, ok := err.(*HistoryError)
			if !ok {
				t.Fatalf("want history error, got %T", err)
			}
			assert.Equal(t, tc.wantIndex, herr.Index)
			assert.Equal(t, uint64(token), herr.TokenID)
		})
	}
}

func withToken(t Transfer, tokenID uint64) Transfer {
	t.TokenID = tokenID
	return t
}

func withPubKey(t Transfer, pub *crypto.PublicKey) Transfer {
	t.PubKey = pub
	return t
}

func TestHistoryErrorABCICode(t *testing.T) {
	err := &HistoryError{TokenID: 3, Index: 1, Err: errors.Wrap(ErrBadSignature, "invalid")}
	code, log := errors.ABCIInfo(err, false)
	assert.Equal(t, uint32(110), code)
	assert.Equal(t, "token 3 transfer 1: invalid: bad signature", log)

	malformed := errors.WithKind(ErrHistoryBroken, errors.Wrap(errors.ErrInput, "to"))
	code, _ = errors.ABCIInfo(&HistoryError{TokenID: 3, Index: 0, Err: malformed}, false)
	assert.Equal(t, uint32(112), code)
}

func TestBlock(t *testing.T) {
	alice := plasmatest.NewKey()
	bob := plasmatest.NewKey().PublicKey().Address()

	b := NewBlock(5)
	assert.IsErr(t, errors.ErrInput, b.Add(mustSign(t, alice, 1, bob, 4)))
	assert.Nil(t, b.Add(mustSign(t, alice, 1, bob, 5)))
	assert.IsErr(t, errors.ErrDuplicate, b.Add(mustSign(t, alice, 1, bob, 5)))

	root := b.Seal()
	_, err := b.Exclusion(1)
	assert.IsErr(t, errors.ErrDuplicate, err)

	branch, err := b.Exclusion(2)
	assert.Nil(t, err)
	ok, err := merkle.VerifyExclusion(root, 2, branch)
	assert.Nil(t, err)
	assert.Equal(t, true, ok)
}
