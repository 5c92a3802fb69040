package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/codec"
	"github.com/zatoichi-labs/plasma/errors"
	"github.com/zatoichi-labs/plasma/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Wallet holds the balance of a single address.
type Wallet struct {
	Available uint64 `protobuf:"varint,1,opt,name=available,proto3" json:"available"`
	Locked    uint64 `protobuf:"varint,2,opt,name=locked,proto3" json:"locked"`
}

var _ orm.Model = (*Wallet)(nil)

// walletProto is Wallet without its methods.
type walletProto Wallet

func (m *walletProto) Reset()         { *m = walletProto{} }
func (m *walletProto) String() string { return proto.CompactTextString(m) }
func (*walletProto) ProtoMessage()    {}

// Marshal uses the protobuf encoding.
func (w *Wallet) Marshal() ([]byte, error) {
	return codec.MarshalProto((*walletProto)(w))
}

// Unmarshal uses the protobuf encoding.
func (w *Wallet) Unmarshal(raw []byte) error {
	return codec.UnmarshalProto(raw, (*walletProto)(w))
}

// Validate always succeeds. Any pair of balances is a valid wallet.
func (w *Wallet) Validate() error {
	return nil
}

// Total returns the sum of available and locked funds.
func (w *Wallet) Total() (uint64, error) {
	total := w.Available + w.Locked
	if total < w.Available {
		return 0, errors.Wrap(errors.ErrOverflow, "wallet total")
	}
	return total, nil
}

// IsEmpty returns true if the wallet holds no funds.
func (w *Wallet) IsEmpty() bool {
	return w.Available == 0 && w.Locked == 0
}

// Bucket stores the wallets keyed by their owner address.
type Bucket struct {
	orm.ModelBucket
}

// NewBucket returns a bucket for managing wallets
func NewBucket() Bucket {
	return Bucket{
		ModelBucket: orm.NewModelBucket(BucketName),
	}
}

// Get returns the wallet of given address or nil if it does not exist.
func (b Bucket) Get(db plasma.ReadOnlyKVStore, addr plasma.Address) (*Wallet, error) {
	var w Wallet
	switch err := b.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, err
	}
}

// GetOrCreate returns the wallet of given address or an empty one.
func (b Bucket) GetOrCreate(db plasma.ReadOnlyKVStore, addr plasma.Address) (*Wallet, error) {
	w, err := b.Get(db, addr)
	if err != nil || w != nil {
		return w, err
	}
	return &Wallet{}, nil
}

// Save stores the wallet under given address.
func (b Bucket) Save(db plasma.KVStore, addr plasma.Address, w *Wallet) error {
	if err := addr.Validate(); err != nil {
		return errors.Wrap(err, "wallet address")
	}
	return b.Put(db, addr, w)
}
