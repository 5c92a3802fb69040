package commitment

import (
	"encoding/hex"
	"strconv"

	"github.com/tendermint/tendermint/libs/common"
	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/errors"
	"github.com/zatoichi-labs/plasma/gconf"
	"github.com/zatoichi-labs/plasma/x"
)

// RegisterRoutes registers the handlers of this package.
func RegisterRoutes(r plasma.Registry, auth x.Authenticator, log *Log) {
	r.Handle(pathSubmitCommitmentMsg, NewSubmitHandler(auth, log))
	var conf Configuration
	r.Handle(pathUpdateConfigurationMsg, gconf.NewUpdateConfigurationHandler(confPkg, &conf, auth, nil))
}

// RegisterQuery registers the "/commitments" query.
func RegisterQuery(qr plasma.QueryRouter) {
	NewLog().Register(qr)
}

// SubmitHandler records commitments sent by an operator.
type SubmitHandler struct {
	auth x.Authenticator
	log  *Log
}

var _ plasma.Handler = SubmitHandler{}

// NewSubmitHandler returns a handler for SubmitCommitmentMsg.
func NewSubmitHandler(auth x.Authenticator, log *Log) SubmitHandler {
	return SubmitHandler{auth: auth, log: log}
}

// Check validates the message and the submitter.
func (h SubmitHandler) Check(ctx plasma.Context, db plasma.KVStore, tx plasma.Tx) (*plasma.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &plasma.CheckResult{}, nil
}

// Deliver stores the commitment.
func (h SubmitHandler) Deliver(ctx plasma.Context, db plasma.KVStore, tx plasma.Tx) (*plasma.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	c, err := h.log.Submit(db, msg.Height, msg.Root, msg.Submitter)
	if err != nil {
		return nil, err
	}
	plasma.GetLogger(ctx).Info("commitment recorded", "height", c.Height, "root", hex.EncodeToString(c.Root))
	return &plasma.DeliverResult{
		Tags: []common.KVPair{
			plasma.Tag("commitment", []byte(strconv.FormatInt(c.Height, 10))),
		},
	}, nil
}

func (h SubmitHandler) validate(ctx plasma.Context, db plasma.KVStore, tx plasma.Tx) (*SubmitCommitmentMsg, error) {
	var msg SubmitCommitmentMsg
	if err := plasma.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireAddress(ctx, h.auth, msg.Submitter, "submitter"); err != nil {
		return nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if !conf.IsOperator(msg.Submitter) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "%s is not an operator", msg.Submitter)
	}
	if height, ok := plasma.GetHeight(ctx); ok && msg.Height > height {
		return nil, errors.Wrapf(errors.ErrInput, "commitment height %d above block height %d", msg.Height, height)
	}
	return &msg, nil
}
