package sigs

import (
	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/errors"
)

const (
	pathBumpSequenceMsg = "sigs/bump_sequence"

	maxSequenceIncrement = 1000
	minSequenceIncrement = 1
)

// BumpSequenceMsg increments the sequence of the signer, which invalidates
// every transaction signed with a lower sequence that was not yet submitted.
type BumpSequenceMsg struct {
	Increment uint32 `json:"increment"`
}

var _ plasma.Msg = (*BumpSequenceMsg)(nil)

// Validate returns an error if the increment is out of range.
func (msg *BumpSequenceMsg) Validate() error {
	if msg.Increment < minSequenceIncrement {
		return errors.Wrapf(errors.ErrMsg, "increment must be at least %d", minSequenceIncrement)
	}
	if msg.Increment > maxSequenceIncrement {
		return errors.Wrapf(errors.ErrMsg, "increment must not be greater than %d", maxSequenceIncrement)
	}
	return nil
}

// Path returns the routing path.
func (BumpSequenceMsg) Path() string {
	return pathBumpSequenceMsg
}
