package plasma

import (
	"encoding/json"
)

// Handler is a core engine that can process a few specific messages.
// This could represent "deposit a token", or "challenge an exit".
type Handler interface {
	Checker
	Deliverer
}

// Checker is a subset of Handler to verify the validity of a transaction.
// It is its own interface to allow better type controls in the next
// arguments in Decorator
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer is a subset of Handler to execute a transaction.
// It is its own interface to allow better type controls in the next
// arguments in Decorator
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator wraps a Handler to provide common functionality
// like authentication, or logging, to many Handlers
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Ticker is a method that is called at the end of every block, after all
// user transactions were delivered. It is used to perform periodic or
// delayed tasks, such as finalizing exits whose challenge window elapsed.
type Ticker interface {
	Tick(ctx Context, store CacheableKVStore) (*TickResult, error)
}

// TickerFunc adapts a function to the Ticker interface.
type TickerFunc func(ctx Context, store CacheableKVStore) (*TickResult, error)

// Tick calls f(ctx, store).
func (f TickerFunc) Tick(ctx Context, store CacheableKVStore) (*TickResult, error) {
	return f(ctx, store)
}

// Registry is an interface to register your handler,
// the setup side of a Router
type Registry interface {
	Handle(path string, h Handler)
}

// Options are the app options
// Each extension can look up it's key and parse the json as desired
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key,
// and parses the json into the given obj.
// Returns an error if it cannot parse.
// Noop and no error if key is missing
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	return json.Unmarshal(msg, obj)
}

// Initializer implementations are used to initialize
// extensions from genesis file contents
type Initializer interface {
	FromGenesis(Options, KVStore) error
}
