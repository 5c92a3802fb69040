package token

import (
	"strconv"

	"github.com/tendermint/tendermint/libs/common"
	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/errors"
	"github.com/zatoichi-labs/plasma/x"
	"github.com/zatoichi-labs/plasma/x/cash"
)

// VaultAddress holds the value of all deposits until they are withdrawn.
var VaultAddress = plasma.NewCondition("token", "vault", []byte("deposits")).Address()

// RegisterRoutes registers the deposit handler.
func RegisterRoutes(r plasma.Registry, auth x.Authenticator, registry *Registry, bank cash.Controller) {
	r.Handle(pathDepositMsg, NewDepositHandler(auth, registry, bank))
}

// RegisterQuery registers the "/tokens" query.
func RegisterQuery(qr plasma.QueryRouter) {
	NewRegistry().Register(qr)
}

// DepositHandler creates tokens.
type DepositHandler struct {
	auth     x.Authenticator
	registry *Registry
	bank     cash.Controller
}

var _ plasma.Handler = DepositHandler{}

// NewDepositHandler returns a handler for DepositMsg.
func NewDepositHandler(auth x.Authenticator, registry *Registry, bank cash.Controller) DepositHandler {
	return DepositHandler{auth: auth, registry: registry, bank: bank}
}

// Check validates the message and the owner signature.
func (h DepositHandler) Check(ctx plasma.Context, db plasma.KVStore, tx plasma.Tx) (*plasma.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &plasma.CheckResult{}, nil
}

// Deliver escrows the amount and creates the token.
func (h DepositHandler) Deliver(ctx plasma.Context, db plasma.KVStore, tx plasma.Tx) (*plasma.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	height, ok := plasma.GetHeight(ctx)
	if !ok {
		return nil, errors.Wrap(errors.ErrHuman, "block height not in context")
	}
	if msg.Amount > 0 {
		if err := h.bank.Transfer(db, msg.Owner, VaultAddress, msg.Amount); err != nil {
			return nil, errors.Wrap(err, "cannot escrow deposit")
		}
	}
	t, err := h.registry.Deposit(db, msg.Owner, height, msg.Amount)
	if err != nil {
		return nil, err
	}
	plasma.GetLogger(ctx).Info("token deposited", "token", t.ID, "owner", t.Owner, "amount", t.Amount)
	return &plasma.DeliverResult{
		Data: Key(t.ID),
		Tags: []common.KVPair{
			plasma.Tag("deposited", []byte(strconv.FormatUint(t.ID, 10))),
			plasma.Tag("owner", []byte(t.Owner.String())),
		},
	}, nil
}

func (h DepositHandler) validate(ctx plasma.Context, tx plasma.Tx) (*DepositMsg, error) {
	var msg DepositMsg
	if err := plasma.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireAddress(ctx, h.auth, msg.Owner, "owner"); err != nil {
		return nil, err
	}
	return &msg, nil
}
