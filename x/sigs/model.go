package sigs

import (
	"github.com/gogo/protobuf/proto"
	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/codec"
	"github.com/zatoichi-labs/plasma/crypto"
	"github.com/zatoichi-labs/plasma/errors"
	"github.com/zatoichi-labs/plasma/orm"
)

// BucketName is where we store the accounts
const BucketName = "sigs"

// UserData stores the sequence of a single signer. The public key is set
// with the first signature.
type UserData struct {
	Sequence int64             `protobuf:"varint,1,opt,name=sequence,proto3" json:"sequence"`
	Pubkey   *crypto.PublicKey `protobuf:"bytes,2,opt,name=pubkey,proto3" json:"pubkey"`
}

var _ orm.Model = (*UserData)(nil)

// userDataProto is UserData without its methods.
type userDataProto UserData

func (m *userDataProto) Reset()         { *m = userDataProto{} }
func (m *userDataProto) String() string { return proto.CompactTextString(m) }
func (*userDataProto) ProtoMessage()    {}

// Marshal uses the protobuf encoding.
func (u *UserData) Marshal() ([]byte, error) {
	return codec.MarshalProto((*userDataProto)(u))
}

// Unmarshal uses the protobuf encoding.
func (u *UserData) Unmarshal(raw []byte) error {
	return codec.UnmarshalProto(raw, (*userDataProto)(u))
}

// Validate returns an error if the sequence is negative or set without a key.
func (u *UserData) Validate() error {
	if u.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if u.Sequence > 0 && u.Pubkey == nil {
		return errors.Wrap(ErrInvalidSequence, "needs Pubkey")
	}
	return nil
}

// CheckAndIncrementSequence implements check and increment operation.
// If current sequence value is the same as given expected value then it is
// incremented. Otherwise an error is returned.
// Before incrementing the sequence, this function is testing for a value
// overflow.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", expected, u.Sequence)
	}

	next := u.Sequence + 1

	// maxSequenceValue is limited by the client. The greatest supported
	// nonce value at client side is
	//   Number.MAX_SAFE_INTEGER = 9007199254740991 = 2^53 - 1
	const maxSequenceValue = (1 << 53) - 1
	if next <= 0 || next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence = next
	return nil
}

// Bucket extends orm.ModelBucket with GetOrCreate
type Bucket struct {
	orm.ModelBucket
}

// NewBucket creates the proper bucket for this extension
func NewBucket() Bucket {
	return Bucket{
		ModelBucket: orm.NewModelBucket(BucketName),
	}
}

// Get returns the user stored under given address or nil.
func (b Bucket) Get(db plasma.ReadOnlyKVStore, addr plasma.Address) (*UserData, error) {
	var u UserData
	switch err := b.One(db, addr, &u); {
	case err == nil:
		return &u, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, err
	}
}

// GetOrCreate initializes a UserData if none exist for that key
func (b Bucket) GetOrCreate(db plasma.ReadOnlyKVStore, pubkey *crypto.PublicKey) (*UserData, error) {
	u, err := b.Get(db, pubkey.Address())
	if err != nil {
		return nil, err
	}
	if u == nil {
		u = &UserData{Pubkey: pubkey}
	}
	return u, nil
}

// Save stores the user under the address of its public key.
func (b Bucket) Save(db plasma.KVStore, u *UserData) error {
	if u.Pubkey == nil {
		return errors.Wrap(errors.ErrEmpty, "public key")
	}
	return b.Put(db, u.Pubkey.Address(), u)
}
