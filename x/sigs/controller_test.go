package sigs

import (
	"bytes"
	"testing"

	"github.com/zatoichi-labs/plasma/errors"
	"github.com/zatoichi-labs/plasma/plasmatest"
	"github.com/zatoichi-labs/plasma/plasmatest/assert"
	"github.com/zatoichi-labs/plasma/store"
)

func TestBuildSignBytes(t *testing.T) {
	payload := []byte("exit token 7")

	a, err := BuildSignBytes(payload, "test-chain", 3)
	assert.Nil(t, err)
	b, err := BuildSignBytes(payload, "test-chain", 3)
	assert.Nil(t, err)
	if !bytes.Equal(a, b) {
		t.Fatal("sign bytes must be deterministic")
	}
	if len(a) != 64 {
		t.Fatalf("want sha512 size, got %d", len(a))
	}

	other, err := BuildSignBytes(payload, "test-chain", 4)
	assert.Nil(t, err)
	if bytes.Equal(a, other) {
		t.Fatal("sequence must change sign bytes")
	}
	other, err = BuildSignBytes(payload, "other-chain", 3)
	assert.Nil(t, err)
	if bytes.Equal(a, other) {
		t.Fatal("chain id must change sign bytes")
	}

	_, err = BuildSignBytes(payload, "test-chain", -1)
	assert.IsErr(t, ErrInvalidSequence, err)
	_, err = BuildSignBytes(payload, "bad", 1)
	assert.IsErr(t, errors.ErrInput, err)
}

func TestVerifySignature(t *testing.T) {
	const chainID = "test-chain"
	key := plasmatest.NewKey()
	db := store.MemStore()
	tx := newSignedTx([]byte("payload"), nil)

	seq, err := NextNonce(db, key.PublicKey().Address())
	assert.Nil(t, err)
	assert.Equal(t, int64(0), seq)

	sig, err := SignTx(key, tx, chainID, seq)
	assert.Nil(t, err)
	tx.Signatures = []*StdSignature{sig}

	signers, err := VerifyTxSignatures(db, tx, chainID)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(signers))
	assert.Equal(t, key.PublicKey().Condition(), signers[0])

	seq, err = NextNonce(db, key.PublicKey().Address())
	assert.Nil(t, err)
	assert.Equal(t, int64(1), seq)

	// The same signature cannot be used twice.
	_, err = VerifyTxSignatures(db, tx, chainID)
	assert.IsErr(t, ErrInvalidSequence, err)

	// Signature bound to another chain is rejected.
	sig, err = SignTx(key, tx, "other-chain", seq)
	assert.Nil(t, err)
	tx.Signatures = []*StdSignature{sig}
	_, err = VerifyTxSignatures(db, tx, chainID)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	// Missing public key.
	tx.Signatures = []*StdSignature{{Sequence: seq, Signature: []byte("sig")}}
	_, err = VerifyTxSignatures(db, tx, chainID)
	assert.IsErr(t, errors.ErrUnauthorized, err)
}

func TestUserDataSequence(t *testing.T) {
	u := UserData{Pubkey: plasmatest.NewKey().PublicKey()}
	assert.Nil(t, u.CheckAndIncrementSequence(0))
	assert.IsErr(t, ErrInvalidSequence, u.CheckAndIncrementSequence(0))
	assert.Nil(t, u.CheckAndIncrementSequence(1))

	u.Sequence = (1 << 53) - 1
	assert.IsErr(t, errors.ErrOverflow, u.CheckAndIncrementSequence(u.Sequence))

	assert.IsErr(t, ErrInvalidSequence, (&UserData{Sequence: 2}).Validate())
	assert.IsErr(t, ErrInvalidSequence, (&UserData{Sequence: -1}).Validate())
}
