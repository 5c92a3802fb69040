package sigs

import (
	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/plasmatest"
)

// signedTx is a transaction carrying an arbitrary payload as its sign bytes.
type signedTx struct {
	plasmatest.Tx
	Payload    []byte
	Signatures []*StdSignature
}

var _ SignedTx = (*signedTx)(nil)
var _ plasma.Tx = (*signedTx)(nil)

func newSignedTx(payload []byte, msg plasma.Msg) *signedTx {
	return &signedTx{
		Tx:      plasmatest.Tx{Msg: msg},
		Payload: payload,
	}
}

func (tx *signedTx) GetSignBytes() ([]byte, error) {
	return tx.Payload, nil
}

func (tx *signedTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}
