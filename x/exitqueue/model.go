package exitqueue

import (
	"encoding/binary"

	"github.com/gogo/protobuf/proto"
	"github.com/zatoichi-labs/plasma/codec"
	"github.com/zatoichi-labs/plasma/errors"
	"github.com/zatoichi-labs/plasma/orm"
)

// Entry is a queued exit.
type Entry struct {
	TokenID            uint64 `protobuf:"varint,1,opt,name=token_id,proto3" json:"token_id"`
	ClaimID            uint64 `protobuf:"varint,2,opt,name=claim_id,proto3" json:"claim_id"`
	ExitableAt         int64  `protobuf:"varint,3,opt,name=exitable_at,proto3" json:"exitable_at"`
	ChallengePeriodEnd int64  `protobuf:"varint,4,opt,name=challenge_period_end,proto3" json:"challenge_period_end"`
}

var _ orm.Model = (*Entry)(nil)

// entryProto is Entry without its methods.
type entryProto Entry

func (m *entryProto) Reset()         { *m = entryProto{} }
func (m *entryProto) String() string { return proto.CompactTextString(m) }
func (*entryProto) ProtoMessage()    {}

// Marshal uses the protobuf encoding.
func (e *Entry) Marshal() ([]byte, error) {
	return codec.MarshalProto((*entryProto)(e))
}

// Unmarshal uses the protobuf encoding.
func (e *Entry) Unmarshal(raw []byte) error {
	return codec.UnmarshalProto(raw, (*entryProto)(e))
}

// Validate rejects entries that cannot be ordered.
func (e *Entry) Validate() error {
	if e.TokenID == 0 {
		return errors.Wrap(errors.ErrInput, "token id")
	}
	if e.ExitableAt < 0 {
		return errors.Wrapf(errors.ErrInput, "exitable at %d", e.ExitableAt)
	}
	if e.ChallengePeriodEnd < 0 {
		return errors.Wrapf(errors.ErrInput, "challenge period end %d", e.ChallengePeriodEnd)
	}
	return nil
}

// Less reports whether e is finalized before other.
func (e *Entry) Less(other *Entry) bool {
	if e.ExitableAt != other.ExitableAt {
		return e.ExitableAt < other.ExitableAt
	}
	return e.TokenID < other.TokenID
}

// PriorityKey is the big endian encoding of (exitable height, token id).
// Byte order of keys is the priority order.
func (e *Entry) PriorityKey() []byte {
	return pairKey(e.ExitableAt, e.TokenID)
}

func (e *Entry) deadlineKey() []byte {
	return pairKey(e.ChallengePeriodEnd, e.TokenID)
}

func pairKey(height int64, tokenID uint64) []byte {
	k := make([]byte, 16)
	binary.BigEndian.PutUint64(k, uint64(height))
	binary.BigEndian.PutUint64(k[8:], tokenID)
	return k
}

func tokenKey(tokenID uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, tokenID)
	return k
}
