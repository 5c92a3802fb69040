package token

import (
	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/errors"
)

const pathDepositMsg = "token/deposit"

// DepositMsg creates a new token owned by Owner, moving Amount from the
// owner wallet into the vault.
type DepositMsg struct {
	Owner  plasma.Address `json:"owner"`
	Amount uint64         `json:"amount"`
}

var _ plasma.Msg = (*DepositMsg)(nil)

// Path returns the routing path.
func (DepositMsg) Path() string {
	return pathDepositMsg
}

// Validate checks the owner address.
func (m *DepositMsg) Validate() error {
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	return nil
}
