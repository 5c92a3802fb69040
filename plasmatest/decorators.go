package plasmatest

import "github.com/zatoichi-labs/plasma"

// Decorator is a mock implementation of the plasma.Decorator interface.
//
// Set CheckErr or DeliverErr to force error response for corresponding method.
// If error attributes are not set then wrapped handler method is called and
// its result returned.
// Each method call is counted. Regardless of the method call result the
// counter is incremented.
type Decorator struct {
	checkCall int
	// CheckErr if set is returned by the Check method before calling
	// the wrapped handler.
	CheckErr error

	deliverCall int
	// DeliverErr if set is returned by the Deliver method before calling
	// the wrapped handler.
	DeliverErr error
}

var _ plasma.Decorator = (*Decorator)(nil)

// Check returns CheckErr or calls the next handler.
func (d *Decorator) Check(ctx plasma.Context, db plasma.KVStore, tx plasma.Tx, next plasma.Checker) (*plasma.CheckResult, error) {
	d.checkCall++

	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

// Deliver returns DeliverErr or calls the next handler.
func (d *Decorator) Deliver(ctx plasma.Context, db plasma.KVStore, tx plasma.Tx, next plasma.Deliverer) (*plasma.DeliverResult, error) {
	d.deliverCall++

	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// CheckCallCount returns the number of Check calls.
func (d *Decorator) CheckCallCount() int {
	return d.checkCall
}

// DeliverCallCount returns the number of Deliver calls.
func (d *Decorator) DeliverCallCount() int {
	return d.deliverCall
}

// CallCount returns the number of all calls.
func (d *Decorator) CallCount() int {
	return d.checkCall + d.deliverCall
}

// Decorate wraps the handler with a single decorator.
func Decorate(h plasma.Handler, d plasma.Decorator) plasma.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn plasma.Handler
	dc plasma.Decorator
}

var _ plasma.Handler = (*decoratedHandler)(nil)

func (d *decoratedHandler) Check(ctx plasma.Context, db plasma.KVStore, tx plasma.Tx) (*plasma.CheckResult, error) {
	return d.dc.Check(ctx, db, tx, d.hn)
}

func (d *decoratedHandler) Deliver(ctx plasma.Context, db plasma.KVStore, tx plasma.Tx) (*plasma.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}
