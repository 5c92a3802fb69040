/*
Package codec holds the binary encoding used for everything that is stored
in the state or sent in a transaction.

Models kept in the state are encoded as protocol buffers. Their fields carry
protobuf struct tags and the encoding is done by reflection, so no code
needs to be generated. A model type must not implement Marshal itself when
passed to MarshalProto; models encode a method-less copy of their type
instead.

Messages and transactions use the go-amino binary bare format, which can
encode interface values like the message carried by a transaction. All
implementations of an interface must be registered before use, usually from
an init function of the package declaring them.

Both encodings are deterministic, so the same value always results in the
same bytes and every node computes the same application hash.
*/
package codec

import (
	"github.com/gogo/protobuf/proto"
	amino "github.com/tendermint/go-amino"
	"github.com/zatoichi-labs/plasma/errors"
)

var cdc = amino.NewCodec()

// Codec returns the shared amino codec.
func Codec() *amino.Codec {
	return cdc
}

// RegisterInterface declares an interface type that can be encoded. Pass
// a nil pointer to the interface, ie. (*plasma.Msg)(nil).
func RegisterInterface(ptr interface{}) {
	cdc.RegisterInterface(ptr, nil)
}

// RegisterConcrete declares an implementation of a registered interface
// under a unique name.
func RegisterConcrete(o interface{}, name string) {
	cdc.RegisterConcrete(o, name, nil)
}

// Marshal returns the binary representation of given value.
func Marshal(o interface{}) ([]byte, error) {
	bz, err := cdc.MarshalBinaryBare(o)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "marshal %T: %s", o, err)
	}
	return bz, nil
}

// MustMarshal is like Marshal but panics on failure. Use it only for values
// that are known to be encodable.
func MustMarshal(o interface{}) []byte {
	bz, err := Marshal(o)
	if err != nil {
		panic(err)
	}
	return bz
}

// Unmarshal decodes the binary representation into ptr.
func Unmarshal(bz []byte, ptr interface{}) error {
	if err := cdc.UnmarshalBinaryBare(bz, ptr); err != nil {
		return errors.Wrapf(errors.ErrModel, "unmarshal %T: %s", ptr, err)
	}
	return nil
}

// MarshalJSON returns the amino JSON representation of given value.
// Interface values are encoded together with their registered name.
func MarshalJSON(o interface{}) ([]byte, error) {
	bz, err := cdc.MarshalJSONIndent(o, "", "  ")
	if err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "marshal json %T: %s", o, err)
	}
	return bz, nil
}

// UnmarshalJSON is the inverse of MarshalJSON.
func UnmarshalJSON(bz []byte, ptr interface{}) error {
	if err := cdc.UnmarshalJSON(bz, ptr); err != nil {
		return errors.Wrapf(errors.ErrModel, "unmarshal json %T: %s", ptr, err)
	}
	return nil
}

// MarshalProto returns the protobuf encoding of given message.
func MarshalProto(m proto.Message) ([]byte, error) {
	bz, err := proto.Marshal(m)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "marshal %T: %s", m, err)
	}
	return bz, nil
}

// UnmarshalProto decodes the protobuf encoding into m.
func UnmarshalProto(bz []byte, m proto.Message) error {
	if err := proto.Unmarshal(bz, m); err != nil {
		return errors.Wrapf(errors.ErrModel, "unmarshal %T: %s", m, err)
	}
	return nil
}
