package exit

import (
	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/errors"
	"github.com/zatoichi-labs/plasma/x/proof"
)

const (
	pathRequestExitMsg         = "exit/request"
	pathChallengeExitMsg       = "exit/challenge"
	pathCancelExitMsg          = "exit/cancel"
	pathUpdateConfigurationMsg = "exit/update_configuration"
)

// RequestExitMsg starts the exit of a token. History lists the transfers
// of the token since its deposit, oldest first.
type RequestExitMsg struct {
	TokenID  uint64           `json:"token_id"`
	Claimant plasma.Address   `json:"claimant"`
	History  []proof.Transfer `json:"history"`
}

var _ plasma.Msg = (*RequestExitMsg)(nil)

// Path returns the routing path.
func (RequestExitMsg) Path() string {
	return pathRequestExitMsg
}

// Validate checks the message fields. The history is verified when the
// message is delivered.
func (m *RequestExitMsg) Validate() error {
	if m.TokenID == 0 {
		return errors.Wrap(errors.ErrMsg, "token id")
	}
	if err := m.Claimant.Validate(); err != nil {
		return errors.Wrap(err, "claimant")
	}
	return nil
}

// ChallengeExitMsg disputes the pending exit of a token.
type ChallengeExitMsg struct {
	TokenID    uint64         `json:"token_id"`
	Challenger plasma.Address `json:"challenger"`
	Disproof   Disproof       `json:"disproof"`
}

var _ plasma.Msg = (*ChallengeExitMsg)(nil)

// Path returns the routing path.
func (ChallengeExitMsg) Path() string {
	return pathChallengeExitMsg
}

// Validate checks the message fields.
func (m *ChallengeExitMsg) Validate() error {
	if m.TokenID == 0 {
		return errors.Wrap(errors.ErrMsg, "token id")
	}
	if err := m.Challenger.Validate(); err != nil {
		return errors.Wrap(err, "challenger")
	}
	return m.Disproof.Validate()
}

// CancelExitMsg withdraws a pending exit request.
type CancelExitMsg struct {
	TokenID  uint64         `json:"token_id"`
	Claimant plasma.Address `json:"claimant"`
}

var _ plasma.Msg = (*CancelExitMsg)(nil)

// Path returns the routing path.
func (CancelExitMsg) Path() string {
	return pathCancelExitMsg
}

// Validate checks the message fields.
func (m *CancelExitMsg) Validate() error {
	if m.TokenID == 0 {
		return errors.Wrap(errors.ErrMsg, "token id")
	}
	return m.Claimant.Validate()
}

// UpdateConfigurationMsg patches the exit configuration. Zero fields are
// left unchanged.
type UpdateConfigurationMsg struct {
	Patch *Configuration `json:"patch"`
}

var _ plasma.Msg = (*UpdateConfigurationMsg)(nil)

// Path returns the routing path.
func (UpdateConfigurationMsg) Path() string {
	return pathUpdateConfigurationMsg
}

// Validate requires a patch. The patched configuration is validated before
// it is stored.
func (m *UpdateConfigurationMsg) Validate() error {
	if m.Patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}
	if m.Patch.Window < 0 {
		return errors.Wrapf(errors.ErrMsg, "window %d", m.Patch.Window)
	}
	return nil
}
