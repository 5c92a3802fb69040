/*
Package crypto holds the signature primitives used to authenticate
transactions and off-chain token transfers.

Only ed25519 is supported. Every public key is represented on chain by a
signature condition, and the address of that condition identifies the owner
of a key.
*/
package crypto

import (
	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/errors"
	"golang.org/x/crypto/ed25519"
)

// ExtensionName is used for the Conditions we get from signatures
const ExtensionName = "sigs"

// PubKey represents a crypto public key we use
type PubKey interface {
	Verify(message, sig []byte) bool
	Condition() plasma.Condition
}

// Signer is the functionality we use from a private key
// No serializing to support hardware devices as well.
type Signer interface {
	Sign(message []byte) ([]byte, error)
	PublicKey() *PublicKey
}

// SignatureVerifier checks that a signature was created for a message by
// the holder of a public key.
type SignatureVerifier interface {
	Verify(pub *PublicKey, message, signature []byte) error
}

// Ed25519Verifier is the SignatureVerifier for ed25519 keys.
type Ed25519Verifier struct{}

var _ SignatureVerifier = Ed25519Verifier{}

// Verify returns ErrUnauthorized if the signature does not match.
func (Ed25519Verifier) Verify(pub *PublicKey, message, signature []byte) error {
	if pub == nil {
		return errors.Wrap(errors.ErrEmpty, "public key")
	}
	if err := pub.Validate(); err != nil {
		return err
	}
	if !pub.Verify(message, signature) {
		return errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}
	return nil
}

// PublicKey is an ed25519 public key.
type PublicKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519"`
}

var _ PubKey = (*PublicKey)(nil)

// Validate checks the key size.
func (p *PublicKey) Validate() error {
	if len(p.Ed25519) != ed25519.PublicKeySize {
		return errors.Wrapf(errors.ErrInput, "public key must be %d bytes", ed25519.PublicKeySize)
	}
	return nil
}

// Verify verifies the signature was created with this message and public key
func (p *PublicKey) Verify(message, sig []byte) bool {
	if len(p.Ed25519) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p.Ed25519), message, sig)
}

// Condition encodes the public key into a plasma condition
func (p *PublicKey) Condition() plasma.Condition {
	if len(p.Ed25519) == 0 {
		return nil
	}
	return plasma.NewCondition(ExtensionName, "ed25519", p.Ed25519)
}

// Address returns the address of the key condition.
func (p *PublicKey) Address() plasma.Address {
	return p.Condition().Address()
}

// PrivateKey is an ed25519 private key.
type PrivateKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519"`
}

var _ Signer = (*PrivateKey)(nil)

// Sign returns a matching signature for this private key
func (p *PrivateKey) Sign(message []byte) ([]byte, error) {
	if len(p.Ed25519) != ed25519.PrivateKeySize {
		return nil, errors.Wrap(errors.ErrInput, "invalid private key")
	}
	return ed25519.Sign(ed25519.PrivateKey(p.Ed25519), message), nil
}

// PublicKey returns the corresponding PublicKey
func (p *PrivateKey) PublicKey() *PublicKey {
	privateKey := ed25519.PrivateKey(p.Ed25519)
	pub := privateKey.Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

// GenPrivKeyEd25519 returns a random new private key
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed will deterministically generate a private key from
// a given seed. Use if you have a strong source of external randomness,
// or for deterministic keys in test cases.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	return &PrivateKey{Ed25519: ed25519.NewKeyFromSeed(seed)}
}
