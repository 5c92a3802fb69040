package token

import (
	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/errors"
	"github.com/zatoichi-labs/plasma/orm"
)

// Registry keeps exactly one record per deposited token.
type Registry struct {
	bucket orm.ModelBucket
	ids    orm.Sequence
}

// NewRegistry returns the token registry.
func NewRegistry() *Registry {
	return &Registry{
		bucket: orm.NewModelBucket(BucketName),
		ids:    orm.NewSequence(BucketName, "id"),
	}
}

// Deposit creates a new Deposited token. Ids start at 1 and are never
// reused.
func (r *Registry) Deposit(db plasma.KVStore, owner plasma.Address, height int64, amount uint64) (*Token, error) {
	id, err := r.ids.NextInt(db)
	if err != nil {
		return nil, errors.Wrap(err, "cannot acquire token id")
	}
	t := &Token{
		ID:            uint64(id),
		Owner:         owner,
		Status:        Deposited,
		DepositHeight: height,
		Amount:        amount,
	}
	if err := r.bucket.Put(db, Key(t.ID), t); err != nil {
		return nil, errors.Wrap(err, "cannot store token")
	}
	return t, nil
}

// Get returns the token with given id or ErrNotFound.
func (r *Registry) Get(db plasma.ReadOnlyKVStore, id uint64) (*Token, error) {
	var t Token
	if err := r.bucket.One(db, Key(id), &t); err != nil {
		return nil, errors.Wrapf(err, "token %d", id)
	}
	return &t, nil
}

// SetStatus changes the status of the token. Only Deposited to Exiting,
// Exiting to Deposited and Exiting to Withdrawn are allowed.
func (r *Registry) SetStatus(db plasma.KVStore, id uint64, status Status) (*Token, error) {
	t, err := r.Get(db, id)
	if err != nil {
		return nil, err
	}
	if !t.Status.canBecome(status) {
		return nil, errors.Wrapf(errors.ErrState, "token %d cannot change from %s to %s", id, t.Status, status)
	}
	t.Status = status
	if err := r.bucket.Put(db, Key(id), t); err != nil {
		return nil, errors.Wrap(err, "cannot store token")
	}
	return t, nil
}

// SetOwner changes the owner of a token that is not withdrawn.
func (r *Registry) SetOwner(db plasma.KVStore, id uint64, owner plasma.Address) (*Token, error) {
	t, err := r.Get(db, id)
	if err != nil {
		return nil, err
	}
	if t.Status == Withdrawn {
		return nil, errors.Wrapf(errors.ErrState, "token %d is withdrawn", id)
	}
	t.Owner = owner
	if err := r.bucket.Put(db, Key(id), t); err != nil {
		return nil, errors.Wrap(err, "cannot store token")
	}
	return t, nil
}

// Register exposes the registry as the "/tokens" query.
func (r *Registry) Register(qr plasma.QueryRouter) {
	r.bucket.Register("tokens", qr)
}
