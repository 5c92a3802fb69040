package plasmatest

import "github.com/zatoichi-labs/plasma"

// Tx represents a plasma transaction.
// Transaction represents a single message that is to be processed within this
// transaction.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg plasma.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ plasma.Tx = (*Tx)(nil)

// GetMsg returns the message or the error.
func (tx *Tx) GetMsg() (plasma.Msg, error) {
	return tx.Msg, tx.Err
}

// Unmarshal is not supported.
func (tx *Tx) Unmarshal([]byte) error {
	panic("not implemented")
}

// Marshal is not supported.
func (tx *Tx) Marshal() ([]byte, error) {
	panic("not implemented")
}

// Msg represents a plasma message.
// Message is a request processed within a single transaction.
type Msg struct {
	// RoutePath returned by the path method, consumed by the router.
	RoutePath string
	// Err if set is returned by the Validate method.
	Err error
}

var _ plasma.Msg = (*Msg)(nil)

// Path returns RoutePath.
func (m *Msg) Path() string {
	return m.RoutePath
}

// Validate returns Err.
func (m *Msg) Validate() error {
	return m.Err
}
