package codec

import (
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/zatoichi-labs/plasma/errors"
	"github.com/zatoichi-labs/plasma/plasmatest/assert"
)

type label []byte

type kind int32

type point struct {
	X int64 `protobuf:"varint,1,opt,name=x,proto3"`
	Y int64 `protobuf:"varint,2,opt,name=y,proto3"`
}

type route struct {
	ID     uint64   `protobuf:"varint,1,opt,name=id,proto3"`
	Name   label    `protobuf:"bytes,2,opt,name=name,proto3"`
	Kind   kind     `protobuf:"varint,3,opt,name=kind,proto3"`
	Origin point    `protobuf:"bytes,4,opt,name=origin,proto3"`
	Path   []point  `protobuf:"bytes,5,rep,name=path,proto3"`
	Next   *point   `protobuf:"bytes,6,opt,name=next,proto3"`
	Chunks [][]byte `protobuf:"bytes,7,rep,name=chunks,proto3"`
}

func (m *route) Reset()         { *m = route{} }
func (m *route) String() string { return proto.CompactTextString(m) }
func (*route) ProtoMessage()    {}

type counter struct {
	N uint64 `protobuf:"varint,1,opt,name=n,proto3"`
}

func (m *counter) Reset()         { *m = counter{} }
func (m *counter) String() string { return proto.CompactTextString(m) }
func (*counter) ProtoMessage()    {}

func TestProtoRoundTrip(t *testing.T) {
	r := route{
		ID:     9,
		Name:   label("north"),
		Kind:   2,
		Origin: point{X: -1, Y: 4},
		Path:   []point{{X: 1}, {Y: 2}},
		Next:   &point{X: 3, Y: 3},
		Chunks: [][]byte{{1, 2}, {3}},
	}
	bz, err := MarshalProto(&r)
	assert.Nil(t, err)

	var got route
	assert.Nil(t, UnmarshalProto(bz, &got))
	assert.Equal(t, r, got)

	again, err := MarshalProto(&got)
	assert.Nil(t, err)
	assert.Equal(t, bz, again)
}

func TestProtoWireFormat(t *testing.T) {
	bz, err := MarshalProto(&counter{N: 150})
	assert.Nil(t, err)
	assert.Equal(t, []byte{0x08, 0x96, 0x01}, bz)

	bz, err = MarshalProto(&counter{})
	assert.Nil(t, err)
	assert.Equal(t, 0, len(bz))
}

func TestUnmarshalProtoGarbage(t *testing.T) {
	var got counter
	err := UnmarshalProto([]byte{0x08, 0xff}, &got)
	assert.ErrKind(t, errors.ErrModel, err)
}
