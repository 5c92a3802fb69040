package app

import (
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/errors"
)

// BaseApp adds DeliverTx, CheckTx, and EndBlock
// handlers to the storage and query functionality of StoreApp
type BaseApp struct {
	*StoreApp
	decoder plasma.TxDecoder
	handler plasma.Handler
	ticker  plasma.Ticker
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp constructs a basic abci application
func NewBaseApp(
	store *StoreApp,
	decoder plasma.TxDecoder,
	handler plasma.Handler,
	ticker plasma.Ticker,
	debug bool,
) BaseApp {
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		ticker:   ticker,
		debug:    debug,
	}
}

// DeliverTx - ABCI - dispatches to the handler
func (b BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return plasma.DeliverTxError(err, b.debug)
	}

	ctx := plasma.WithLogInfo(b.BlockContext(),
		"call", "deliver_tx",
		"path", plasma.GetPath(tx))

	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return plasma.DeliverOrError(res, err, b.debug)
}

// CheckTx - ABCI - dispatches to the handler
func (b BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return plasma.CheckTxError(err, b.debug)
	}

	ctx := plasma.WithLogInfo(b.BlockContext(),
		"call", "check_tx",
		"path", plasma.GetPath(tx))

	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return plasma.CheckOrError(res, err, b.debug)
}

// EndBlock - ABCI
//
// Runs the ticker once all transactions of the block were delivered. A
// failing ticker leaves the state untouched and is retried with the next
// block, so the error is logged instead of halting the chain.
func (b BaseApp) EndBlock(req abci.RequestEndBlock) abci.ResponseEndBlock {
	res := b.StoreApp.EndBlock(req)
	if b.ticker == nil {
		return res
	}

	ctx := plasma.WithLogInfo(b.BlockContext(), "call", "end_block")
	tr, err := b.tick(ctx)
	if err != nil {
		plasma.GetLogger(ctx).Error("ticker failed", "err", err)
		return res
	}
	if tr != nil {
		res.Tags = append(res.Tags, tr.Tags...)
	}
	return res
}

// tick runs the ticker inside of a cache wrap, turning panics into errors.
func (b BaseApp) tick(ctx plasma.Context) (tr *plasma.TickResult, err error) {
	defer errors.Recover(&err)

	cache := b.DeliverStore().CacheWrap()
	tr, err = b.ticker.Tick(ctx, cache)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "write ticker cache")
	}
	return tr, nil
}

// loadTx calls the decoder, and capture any panics
func (b BaseApp) loadTx(txBytes []byte) (tx plasma.Tx, err error) {
	defer errors.Recover(&err)
	tx, err = b.decoder(txBytes)
	return
}
