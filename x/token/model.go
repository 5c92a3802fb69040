package token

import (
	"fmt"

	"github.com/gogo/protobuf/proto"
	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/codec"
	"github.com/zatoichi-labs/plasma/errors"
	"github.com/zatoichi-labs/plasma/orm"
)

// BucketName is where the tokens are stored.
const BucketName = "token"

// Status is the lifecycle state of a token.
type Status int32

// Token states.
const (
	Deposited Status = 1
	Exiting   Status = 2
	Withdrawn Status = 3
)

func (s Status) String() string {
	switch s {
	case Deposited:
		return "deposited"
	case Exiting:
		return "exiting"
	case Withdrawn:
		return "withdrawn"
	default:
		return fmt.Sprintf("status(%d)", int32(s))
	}
}

// Validate returns an error for an unknown status.
func (s Status) Validate() error {
	if s < Deposited || s > Withdrawn {
		return errors.Wrapf(errors.ErrState, "unknown status %d", int32(s))
	}
	return nil
}

// canBecome returns true if the transition is allowed.
func (s Status) canBecome(next Status) bool {
	switch s {
	case Deposited:
		return next == Exiting
	case Exiting:
		return next == Deposited || next == Withdrawn
	default:
		return false
	}
}

// Token is a single deposit.
type Token struct {
	ID            uint64         `protobuf:"varint,1,opt,name=id,proto3" json:"id"`
	Owner         plasma.Address `protobuf:"bytes,2,opt,name=owner,proto3" json:"owner"`
	Status        Status         `protobuf:"varint,3,opt,name=status,proto3" json:"status"`
	DepositHeight int64          `protobuf:"varint,4,opt,name=deposit_height,proto3" json:"deposit_height"`
	Amount        uint64         `protobuf:"varint,5,opt,name=amount,proto3" json:"amount"`
}

var _ orm.Model = (*Token)(nil)

// tokenProto is Token without its methods, encoded from the field tags.
type tokenProto Token

func (m *tokenProto) Reset()         { *m = tokenProto{} }
func (m *tokenProto) String() string { return proto.CompactTextString(m) }
func (*tokenProto) ProtoMessage()    {}

// Marshal uses the protobuf encoding.
func (t *Token) Marshal() ([]byte, error) {
	return codec.MarshalProto((*tokenProto)(t))
}

// Unmarshal uses the protobuf encoding.
func (t *Token) Unmarshal(raw []byte) error {
	return codec.UnmarshalProto(raw, (*tokenProto)(t))
}

// Validate checks all fields.
func (t *Token) Validate() error {
	if t.ID == 0 {
		return errors.Wrap(errors.ErrInput, "id")
	}
	if err := t.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := t.Status.Validate(); err != nil {
		return err
	}
	if t.DepositHeight < 0 {
		return errors.Wrapf(errors.ErrInput, "deposit height %d", t.DepositHeight)
	}
	return nil
}

// Key returns the big endian encoded token id.
func Key(id uint64) []byte {
	return orm.EncodeSequence(int64(id))
}
