package plasmatest

import "github.com/zatoichi-labs/plasma"

// Handler is a mock implementation of the plasma.Handler interface.
// Every call is counted and the declared result returned.
type Handler struct {
	checkCall   int
	CheckResult plasma.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult plasma.DeliverResult
	DeliverErr    error
}

var _ plasma.Handler = (*Handler)(nil)

// Check returns CheckResult and CheckErr.
func (h *Handler) Check(ctx plasma.Context, db plasma.KVStore, tx plasma.Tx) (*plasma.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

// Deliver returns DeliverResult and DeliverErr.
func (h *Handler) Deliver(ctx plasma.Context, db plasma.KVStore, tx plasma.Tx) (*plasma.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

// CheckCallCount returns the number of Check calls.
func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

// DeliverCallCount returns the number of Deliver calls.
func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

// CallCount returns the number of all calls.
func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// WriteHandler writes a key/value pair to the store on every call and then
// returns Err.
type WriteHandler struct {
	Key   []byte
	Value []byte
	Err   error
}

var _ plasma.Handler = (*WriteHandler)(nil)

// Check writes and returns Err.
func (h *WriteHandler) Check(ctx plasma.Context, db plasma.KVStore, tx plasma.Tx) (*plasma.CheckResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	if h.Err != nil {
		return nil, h.Err
	}
	return &plasma.CheckResult{}, nil
}

// Deliver writes and returns Err.
func (h *WriteHandler) Deliver(ctx plasma.Context, db plasma.KVStore, tx plasma.Tx) (*plasma.DeliverResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	if h.Err != nil {
		return nil, h.Err
	}
	return &plasma.DeliverResult{}, nil
}

// PanicHandler panics on every call.
type PanicHandler struct {
	Msg string
}

var _ plasma.Handler = PanicHandler{}

// Check panics.
func (h PanicHandler) Check(plasma.Context, plasma.KVStore, plasma.Tx) (*plasma.CheckResult, error) {
	panic(h.Msg)
}

// Deliver panics.
func (h PanicHandler) Deliver(plasma.Context, plasma.KVStore, plasma.Tx) (*plasma.DeliverResult, error) {
	panic(h.Msg)
}
