package utils

import (
	"time"

	"github.com/tendermint/tendermint/libs/log"
	"github.com/zatoichi-labs/plasma"
)

// Logging is a decorator writing one log line for every processed
// transaction, with its path and processing time.
//
// Failures are always logged at error level. Successful deliveries are
// logged at info level and successful checks at debug level, as every
// transaction is checked at least once by each node.
type Logging struct{}

var _ plasma.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs the result of next.Check.
func (Logging) Check(ctx plasma.Context, store plasma.KVStore, tx plasma.Tx, next plasma.Checker) (*plasma.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	logger := txLogger(ctx, tx, start, err)
	switch {
	case err != nil:
		logger.Error("check failed")
	default:
		logger.Debug(res.Log)
	}
	return res, err
}

// Deliver logs the result of next.Deliver.
func (Logging) Deliver(ctx plasma.Context, store plasma.KVStore, tx plasma.Tx, next plasma.Deliverer) (*plasma.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	logger := txLogger(ctx, tx, start, err)
	switch {
	case err != nil:
		logger.Error("deliver failed")
	default:
		logger.With("tags", len(res.Tags)).Info(res.Log)
	}
	return res, err
}

func txLogger(ctx plasma.Context, tx plasma.Tx, start time.Time, err error) log.Logger {
	logger := plasma.GetLogger(ctx).With(
		"path", plasma.GetPath(tx),
		"duration", time.Since(start)/time.Microsecond,
	)
	if err != nil {
		logger = logger.With("err", err)
	}
	return logger
}
