package utils

import (
	"github.com/zatoichi-labs/plasma"
)

// ActionKey is used by ActionTagger as the Key in the Tag it appends
const ActionKey = "action"

// ActionTagger appends an `action = msg.Path()` tag to every successfully
// delivered transaction, so clients can search for deposits, exit requests
// or challenges in a uniform way.
type ActionTagger struct{}

var _ plasma.Decorator = ActionTagger{}

// NewActionTagger creates a ActionTagger decorator
func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

// Check passes the request along.
func (ActionTagger) Check(ctx plasma.Context, db plasma.KVStore, tx plasma.Tx, next plasma.Checker) (*plasma.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver appends the action tag after next succeeded. A transaction
// without a readable message is rejected before next is called.
func (ActionTagger) Deliver(ctx plasma.Context, db plasma.KVStore, tx plasma.Tx, next plasma.Deliverer) (*plasma.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, plasma.Tag(ActionKey, []byte(msg.Path())))
	return res, nil
}
