package commitment

import (
	"github.com/gogo/protobuf/proto"
	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/codec"
	"github.com/zatoichi-labs/plasma/errors"
	"github.com/zatoichi-labs/plasma/merkle"
	"github.com/zatoichi-labs/plasma/orm"
)

// BucketName is where the commitments are stored.
const BucketName = "commitment"

// Commitment is the root of a single child chain block.
type Commitment struct {
	Height    int64          `protobuf:"varint,1,opt,name=height,proto3" json:"height"`
	Root      []byte         `protobuf:"bytes,2,opt,name=root,proto3" json:"root"`
	Submitter plasma.Address `protobuf:"bytes,3,opt,name=submitter,proto3" json:"submitter"`
}

var _ orm.Model = (*Commitment)(nil)

// commitmentProto is Commitment without its methods.
type commitmentProto Commitment

func (m *commitmentProto) Reset()         { *m = commitmentProto{} }
func (m *commitmentProto) String() string { return proto.CompactTextString(m) }
func (*commitmentProto) ProtoMessage()    {}

// Marshal uses the protobuf encoding.
func (c *Commitment) Marshal() ([]byte, error) {
	return codec.MarshalProto((*commitmentProto)(c))
}

// Unmarshal uses the protobuf encoding.
func (c *Commitment) Unmarshal(raw []byte) error {
	return codec.UnmarshalProto(raw, (*commitmentProto)(c))
}

// Validate checks the height and the root size.
func (c *Commitment) Validate() error {
	if c.Height <= 0 {
		return errors.Wrapf(errors.ErrInput, "height %d", c.Height)
	}
	if len(c.Root) != merkle.HashSize {
		return errors.Wrapf(errors.ErrInput, "root must be %d bytes, got %d", merkle.HashSize, len(c.Root))
	}
	if err := c.Submitter.Validate(); err != nil {
		return errors.Wrap(err, "submitter")
	}
	return nil
}

func heightKey(height int64) []byte {
	return orm.EncodeSequence(height)
}
