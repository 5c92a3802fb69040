package cash

import (
	"strconv"

	"github.com/tendermint/tendermint/libs/common"
	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/errors"
	"github.com/zatoichi-labs/plasma/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r plasma.Registry, auth x.Authenticator, control Controller) {
	r.Handle(pathSendMsg, NewSendHandler(auth, control))
}

// RegisterQuery will register this bucket as "/wallets"
func RegisterQuery(qr plasma.QueryRouter) {
	NewBucket().Register("wallets", qr)
}

// SendHandler will handle sending coins
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ plasma.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check just verifies it is properly formed
func (h SendHandler) Check(ctx plasma.Context, store plasma.KVStore, tx plasma.Tx) (*plasma.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &plasma.CheckResult{}, nil
}

// Deliver moves the funds from source to receiver if
// all preconditions are met
func (h SendHandler) Deliver(ctx plasma.Context, store plasma.KVStore, tx plasma.Tx) (*plasma.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Transfer(store, msg.Source, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	return &plasma.DeliverResult{
		Tags: []common.KVPair{
			plasma.Tag("sender", []byte(msg.Source.String())),
			plasma.Tag("recipient", []byte(msg.Destination.String())),
			plasma.Tag("amount", []byte(strconv.FormatUint(msg.Amount, 10))),
		},
	}, nil
}

func (h SendHandler) validate(ctx plasma.Context, tx plasma.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := plasma.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	// Make sure we have permission from the source.
	if err := x.RequireAddress(ctx, h.auth, msg.Source, "source"); err != nil {
		return nil, err
	}
	return &msg, nil
}
