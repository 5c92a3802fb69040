package commitment

import (
	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/errors"
	"github.com/zatoichi-labs/plasma/merkle"
)

const (
	pathSubmitCommitmentMsg    = "commitment/submit"
	pathUpdateConfigurationMsg = "commitment/update_configuration"
)

// SubmitCommitmentMsg records the root of a child chain block.
type SubmitCommitmentMsg struct {
	Height    int64          `json:"height"`
	Root      []byte         `json:"root"`
	Submitter plasma.Address `json:"submitter"`
}

var _ plasma.Msg = (*SubmitCommitmentMsg)(nil)

// Path returns the routing path.
func (SubmitCommitmentMsg) Path() string {
	return pathSubmitCommitmentMsg
}

// Validate checks the message fields.
func (m *SubmitCommitmentMsg) Validate() error {
	if m.Height <= 0 {
		return errors.Wrapf(errors.ErrMsg, "height %d", m.Height)
	}
	if len(m.Root) != merkle.HashSize {
		return errors.Wrapf(errors.ErrInput, "root must be %d bytes", merkle.HashSize)
	}
	if err := m.Submitter.Validate(); err != nil {
		return errors.Wrap(err, "submitter")
	}
	return nil
}

// UpdateConfigurationMsg patches the commitment configuration.
type UpdateConfigurationMsg struct {
	Patch *Configuration `json:"patch"`
}

var _ plasma.Msg = (*UpdateConfigurationMsg)(nil)

// Path returns the routing path.
func (UpdateConfigurationMsg) Path() string {
	return pathUpdateConfigurationMsg
}

// Validate validates the patch.
func (m *UpdateConfigurationMsg) Validate() error {
	if m.Patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}
	return m.Patch.Validate()
}
