package utils

import (
	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/errors"
)

// Recovery is a decorator turning a panic of any handler down the chain
// into an ErrPanic error, so a single broken transaction cannot halt the
// node. The panic is logged with the transaction path.
type Recovery struct{}

var _ plasma.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors
func (Recovery) Check(ctx plasma.Context, store plasma.KVStore, tx plasma.Tx, next plasma.Checker) (_ *plasma.CheckResult, err error) {
	defer logPanic(ctx, tx, &err)
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

// Deliver turns panics into normal errors
func (Recovery) Deliver(ctx plasma.Context, store plasma.KVStore, tx plasma.Tx, next plasma.Deliverer) (_ *plasma.DeliverResult, err error) {
	defer logPanic(ctx, tx, &err)
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}

// logPanic must be deferred before errors.Recover, so it runs after the
// panic was converted.
func logPanic(ctx plasma.Context, tx plasma.Tx, err *error) {
	if !errors.ErrPanic.Is(*err) {
		return
	}
	path := "(missing)"
	if tx != nil {
		path = plasma.GetPath(tx)
	}
	plasma.GetLogger(ctx).Error("recovered from panic", "path", path, "err", *err)
}
