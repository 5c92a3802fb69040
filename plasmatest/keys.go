package plasmatest

import (
	"encoding/binary"

	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/crypto"
)

// NewKey returns a random ed25519 private key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the signature condition of a random key.
func NewCondition() plasma.Condition {
	return NewKey().PublicKey().Condition()
}

// SequenceID returns the big endian encoding of n, as used by sequence
// based keys.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}
