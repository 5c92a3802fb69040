package cash

import (
	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/errors"
)

const (
	pathSendMsg = "cash/send"

	maxMemoSize int = 128
)

// SendMsg moves available funds from the source wallet to the destination.
type SendMsg struct {
	Source      plasma.Address `json:"source"`
	Destination plasma.Address `json:"destination"`
	Amount      uint64         `json:"amount"`
	Memo        string         `json:"memo,omitempty"`
}

var _ plasma.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return pathSendMsg
}

// Validate makes sure that this is sensible
func (s *SendMsg) Validate() error {
	if s.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive SendMsg")
	}
	if err := s.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := s.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if len(s.Memo) > maxMemoSize {
		return errors.Wrapf(errors.ErrState, "memo too long: %d", len(s.Memo))
	}
	return nil
}
