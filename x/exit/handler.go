package exit

import (
	"strconv"

	"github.com/tendermint/tendermint/libs/common"
	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/errors"
	"github.com/zatoichi-labs/plasma/gconf"
	"github.com/zatoichi-labs/plasma/x"
)

// RegisterRoutes registers the exit handlers.
func RegisterRoutes(r plasma.Registry, auth x.Authenticator, m *Machine) {
	r.Handle(pathRequestExitMsg, RequestExitHandler{auth: auth, machine: m})
	r.Handle(pathChallengeExitMsg, ChallengeExitHandler{auth: auth, machine: m})
	r.Handle(pathCancelExitMsg, CancelExitHandler{auth: auth, machine: m})
	var conf Configuration
	r.Handle(pathUpdateConfigurationMsg, gconf.NewUpdateConfigurationHandler(confPkg, &conf, auth, nil))
}

// RegisterQuery registers the claim queries of given machine.
func RegisterQuery(qr plasma.QueryRouter, m *Machine) {
	m.Register(qr)
}

func tokenTag(key string, tokenID uint64) common.KVPair {
	return plasma.Tag(key, []byte(strconv.FormatUint(tokenID, 10)))
}

// RequestExitHandler creates exit claims.
type RequestExitHandler struct {
	auth    x.Authenticator
	machine *Machine
}

var _ plasma.Handler = RequestExitHandler{}

// Check validates the message and the claimant signature.
func (h RequestExitHandler) Check(ctx plasma.Context, db plasma.KVStore, tx plasma.Tx) (*plasma.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &plasma.CheckResult{}, nil
}

// Deliver verifies the history and queues the claim.
func (h RequestExitHandler) Deliver(ctx plasma.Context, db plasma.KVStore, tx plasma.Tx) (*plasma.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	claim, err := h.machine.RequestExit(ctx, db, msg.TokenID, msg.Claimant, msg.History)
	if err != nil {
		return nil, err
	}
	countClaim(Pending)
	return &plasma.DeliverResult{
		Data: claimKey(claim.ID),
		Tags: []common.KVPair{
			tokenTag("exit_requested", claim.TokenID),
			plasma.Tag("claimant", []byte(claim.Claimant.String())),
		},
	}, nil
}

func (h RequestExitHandler) validate(ctx plasma.Context, tx plasma.Tx) (*RequestExitMsg, error) {
	var msg RequestExitMsg
	if err := plasma.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireAddress(ctx, h.auth, msg.Claimant, "claimant"); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ChallengeExitHandler disputes exit claims.
type ChallengeExitHandler struct {
	auth    x.Authenticator
	machine *Machine
}

var _ plasma.Handler = ChallengeExitHandler{}

// Check validates the message and the challenger signature.
func (h ChallengeExitHandler) Check(ctx plasma.Context, db plasma.KVStore, tx plasma.Tx) (*plasma.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &plasma.CheckResult{}, nil
}

// Deliver verifies the disproof and cancels the claim.
func (h ChallengeExitHandler) Deliver(ctx plasma.Context, db plasma.KVStore, tx plasma.Tx) (*plasma.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	claim, err := h.machine.ChallengeExit(ctx, db, msg.TokenID, msg.Challenger, &msg.Disproof)
	if err != nil {
		if ErrInvalidChallenge.Is(err) {
			rejectedChallenges.Inc()
		}
		return nil, err
	}
	countClaim(Challenged)
	return &plasma.DeliverResult{
		Data: claimKey(claim.ID),
		Tags: []common.KVPair{
			tokenTag("challenged", claim.TokenID),
			plasma.Tag("challenger", []byte(msg.Challenger.String())),
		},
	}, nil
}

func (h ChallengeExitHandler) validate(ctx plasma.Context, tx plasma.Tx) (*ChallengeExitMsg, error) {
	var msg ChallengeExitMsg
	if err := plasma.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireAddress(ctx, h.auth, msg.Challenger, "challenger"); err != nil {
		return nil, err
	}
	return &msg, nil
}

// CancelExitHandler drops exit claims on request of the claimant.
type CancelExitHandler struct {
	auth    x.Authenticator
	machine *Machine
}

var _ plasma.Handler = CancelExitHandler{}

// Check validates the message and the claimant signature.
func (h CancelExitHandler) Check(ctx plasma.Context, db plasma.KVStore, tx plasma.Tx) (*plasma.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &plasma.CheckResult{}, nil
}

// Deliver cancels the claim and returns the bond.
func (h CancelExitHandler) Deliver(ctx plasma.Context, db plasma.KVStore, tx plasma.Tx) (*plasma.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	claim, err := h.machine.CancelExit(ctx, db, msg.TokenID, msg.Claimant)
	if err != nil {
		return nil, err
	}
	countClaim(Cancelled)
	return &plasma.DeliverResult{
		Data: claimKey(claim.ID),
		Tags: []common.KVPair{tokenTag("exit_cancelled", claim.TokenID)},
	}, nil
}

func (h CancelExitHandler) validate(ctx plasma.Context, tx plasma.Tx) (*CancelExitMsg, error) {
	var msg CancelExitMsg
	if err := plasma.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireAddress(ctx, h.auth, msg.Claimant, "claimant"); err != nil {
		return nil, err
	}
	return &msg, nil
}
