package proof

import (
	"encoding/binary"

	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/crypto"
	"github.com/zatoichi-labs/plasma/errors"
	"github.com/zatoichi-labs/plasma/merkle"
)

// signDomain prefixes every signed transfer so that the signature cannot be
// reused in another context.
var signDomain = []byte("plasma-cash/transfer/v1")

// Transfer moves a single token from one owner to another in a child chain
// block. The sender signs SignBytes and the transfer is committed in the
// block of its height under the token id.
type Transfer struct {
	TokenID   uint64            `protobuf:"varint,1,opt,name=token_id,proto3" json:"token_id"`
	From      plasma.Address    `protobuf:"bytes,2,opt,name=from,proto3" json:"from"`
	To        plasma.Address    `protobuf:"bytes,3,opt,name=to,proto3" json:"to"`
	Height    int64             `protobuf:"varint,4,opt,name=height,proto3" json:"height"`
	PubKey    *crypto.PublicKey `protobuf:"bytes,5,opt,name=pubkey,proto3" json:"pubkey"`
	Signature []byte            `protobuf:"bytes,6,opt,name=signature,proto3" json:"signature"`
	Branch    merkle.Branch     `protobuf:"bytes,7,opt,name=branch,proto3" json:"branch"`
}

// SignBytes returns the canonical message signed by the sender:
//
// domain | token id (8 bytes) | height (8 bytes) | len(from) | from | len(to) | to
//
// Integers are big endian and lengths are single bytes.
func (t *Transfer) SignBytes() []byte {
	out := make([]byte, 0, len(signDomain)+16+2+len(t.From)+len(t.To))
	out = append(out, signDomain...)

	var num [8]byte
	binary.BigEndian.PutUint64(num[:], t.TokenID)
	out = append(out, num[:]...)
	binary.BigEndian.PutUint64(num[:], uint64(t.Height))
	out = append(out, num[:]...)

	out = append(out, uint8(len(t.From)))
	out = append(out, t.From...)
	out = append(out, uint8(len(t.To)))
	out = append(out, t.To...)
	return out
}

// LeafData returns the content committed in the block for this transfer,
// sign bytes followed by the signature.
func (t *Transfer) LeafData() []byte {
	sb := t.SignBytes()
	out := make([]byte, 0, len(sb)+len(t.Signature))
	out = append(out, sb...)
	return append(out, t.Signature...)
}

// Validate checks that all fields are well formed. It does not verify the
// signature nor the branch.
func (t *Transfer) Validate() error {
	if t.TokenID == 0 {
		return errors.Wrap(errors.ErrInput, "token id")
	}
	if err := t.From.Validate(); err != nil {
		return errors.Wrap(err, "from")
	}
	if err := t.To.Validate(); err != nil {
		return errors.Wrap(err, "to")
	}
	if t.Height <= 0 {
		return errors.Wrapf(errors.ErrInput, "height %d", t.Height)
	}
	if t.PubKey == nil {
		return errors.Wrap(errors.ErrEmpty, "public key")
	}
	if len(t.Signature) == 0 {
		return errors.Wrap(errors.ErrEmpty, "signature")
	}
	return nil
}

// SignTransfer returns a transfer of the token to the new owner, signed by
// the current owner key. The branch must be set once the block is sealed.
func SignTransfer(key *crypto.PrivateKey, tokenID uint64, to plasma.Address, height int64) (*Transfer, error) {
	pub := key.PublicKey()
	t := &Transfer{
		TokenID: tokenID,
		From:    pub.Address(),
		To:      to,
		Height:  height,
		PubKey:  pub,
	}
	sig, err := key.Sign(t.SignBytes())
	if err != nil {
		return nil, errors.Wrap(err, "sign transfer")
	}
	t.Signature = sig
	return t, nil
}
