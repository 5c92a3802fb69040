package app

import (
	"reflect"

	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/errors"
)

// Decorators holds a chain of decorators, not yet resolved by a Handler
type Decorators struct {
	chain []plasma.Decorator
}

/*
ChainDecorators takes a chain of decorators,
and upon adding a final Handler (often a Router),
returns a Handler that will execute this whole stack.

  app.ChainDecorators(
    utils.NewLogging(),
    utils.NewRecovery(),
    sigs.NewDecorator(),
    utils.NewSavepoint().OnDeliver(),
  ).WithHandler(
    myapp.NewRouter(),
  )
*/
func ChainDecorators(chain ...plasma.Decorator) Decorators {
	chain = cutoffNil(chain)
	return Decorators{}.Chain(chain...)
}

// Chain allows us to keep adding more Decorators to the chain
func (d Decorators) Chain(chain ...plasma.Decorator) Decorators {
	chain = cutoffNil(chain)
	newChain := append(d.chain[:len(d.chain):len(d.chain)], chain...)
	return Decorators{newChain}
}

// cutoffNil will in-place remove all all nil values from given slice.
func cutoffNil(ds []plasma.Decorator) []plasma.Decorator {
	var cutoff int
	for i := 0; i < len(ds); i++ {
		ds[i-cutoff] = ds[i]
		if ds[i] == nil || (reflect.ValueOf(ds[i]).Kind() == reflect.Ptr && reflect.ValueOf(ds[i]).IsNil()) {
			cutoff++
		}
	}
	return ds[:len(ds)-cutoff]
}

// WithHandler resolves the stack and returns a concrete Handler
// that will pass through the chain of decorators before calling
// the final Handler.
func (d Decorators) WithHandler(h plasma.Handler) plasma.Handler {
	// start wrapping the handler from last decorator to first one
	// as the top of the chain is understood to be executed first
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = step{d: d.chain[i], next: h}
	}
	return h
}

//------------------ internal types to build chain ---------------

// step captures one step executing a decorator around a
// specific Handler. Simplified version of a closure.
//
// Heavily inspired by negroni's design
type step struct {
	d    plasma.Decorator
	next plasma.Handler
}

var _ plasma.Handler = step{}

// Check passes the handler into the decorator, implements Handler
func (s step) Check(ctx plasma.Context, store plasma.KVStore, tx plasma.Tx) (*plasma.CheckResult, error) {
	return s.d.Check(ctx, store, tx, s.next)
}

// Deliver passes the handler into the decorator, implements Handler
func (s step) Deliver(ctx plasma.Context, store plasma.KVStore, tx plasma.Tx) (*plasma.DeliverResult, error) {
	return s.d.Deliver(ctx, store, tx, s.next)
}

//------------------ tickers ---------------

// ChainTickers combines many tickers into one. They run in the given
// order, each inside its own cache wrap, so a failing ticker leaves no
// partial writes. The first failure aborts the rest of the chain.
func ChainTickers(tickers ...plasma.Ticker) plasma.Ticker {
	return plasma.TickerFunc(func(ctx plasma.Context, db plasma.CacheableKVStore) (*plasma.TickResult, error) {
		var res plasma.TickResult
		for i, t := range tickers {
			if t == nil {
				continue
			}
			cache := db.CacheWrap()
			tr, err := t.Tick(ctx, cache)
			if err != nil {
				cache.Discard()
				return &res, errors.Wrapf(err, "ticker %d", i)
			}
			if err := cache.Write(); err != nil {
				return &res, errors.Wrap(err, "write ticker cache")
			}
			res.Merge(tr)
		}
		return &res, nil
	})
}
