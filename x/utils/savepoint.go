package utils

import (
	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/errors"
)

// Savepoint runs the rest of the chain inside a cache wrap, which is
// written only if the call succeeded. A failed exit request or challenge
// therefore never leaves a partial bond transfer behind.
//
// Each of CheckTx and DeliverTx must be enabled explicitly.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ plasma.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator,
// but you must call OnCheck/OnDeliver so it will be triggered
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a savepoint that will trigger on CheckTx
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver returns a savepoint that will trigger on DeliverTx
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

// Check will optionally set a checkpoint
func (s Savepoint) Check(ctx plasma.Context, store plasma.KVStore, tx plasma.Tx, next plasma.Checker) (*plasma.CheckResult, error) {
	var res *plasma.CheckResult
	err := savepoint(s.onCheck, store, func(db plasma.KVStore) (err error) {
		res, err = next.Check(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Deliver will optionally set a checkpoint
func (s Savepoint) Deliver(ctx plasma.Context, store plasma.KVStore, tx plasma.Tx, next plasma.Deliverer) (*plasma.DeliverResult, error) {
	var res *plasma.DeliverResult
	err := savepoint(s.onDeliver, store, func(db plasma.KVStore) (err error) {
		res, err = next.Deliver(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// savepoint calls fn with a cache wrapped store when enabled and the
// store supports it, otherwise with the store itself.
func savepoint(enabled bool, store plasma.KVStore, fn func(plasma.KVStore) error) error {
	cstore, ok := store.(plasma.CacheableKVStore)
	if !enabled || !ok {
		return fn(store)
	}
	cache := cstore.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "writing savepoint")
	}
	return nil
}
