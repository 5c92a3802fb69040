package app

import (
	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/codec"
	"github.com/zatoichi-labs/plasma/errors"
	"github.com/zatoichi-labs/plasma/x/cash"
	"github.com/zatoichi-labs/plasma/x/commitment"
	"github.com/zatoichi-labs/plasma/x/exit"
	"github.com/zatoichi-labs/plasma/x/sigs"
	"github.com/zatoichi-labs/plasma/x/token"
)

func init() {
	codec.RegisterInterface((*plasma.Msg)(nil))
	codec.RegisterConcrete(&sigs.BumpSequenceMsg{}, "sigs/BumpSequenceMsg")
	codec.RegisterConcrete(&cash.SendMsg{}, "cash/SendMsg")
	codec.RegisterConcrete(&token.DepositMsg{}, "token/DepositMsg")
	codec.RegisterConcrete(&commitment.SubmitCommitmentMsg{}, "commitment/SubmitCommitmentMsg")
	codec.RegisterConcrete(&commitment.UpdateConfigurationMsg{}, "commitment/UpdateConfigurationMsg")
	codec.RegisterConcrete(&exit.RequestExitMsg{}, "exit/RequestExitMsg")
	codec.RegisterConcrete(&exit.ChallengeExitMsg{}, "exit/ChallengeExitMsg")
	codec.RegisterConcrete(&exit.CancelExitMsg{}, "exit/CancelExitMsg")
	codec.RegisterConcrete(&exit.UpdateConfigurationMsg{}, "exit/UpdateConfigurationMsg")
}

// Tx is the transaction accepted by plasmad. It carries exactly one
// message together with the signatures authorizing it.
type Tx struct {
	Msg        plasma.Msg           `json:"msg"`
	Signatures []*sigs.StdSignature `json:"signatures"`
}

var _ plasma.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (plasma.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

// Marshal serializes the transaction.
func (tx *Tx) Marshal() ([]byte, error) {
	return codec.Marshal(tx)
}

// Unmarshal loads the transaction from its serialized form.
func (tx *Tx) Unmarshal(bz []byte) error {
	return codec.Unmarshal(bz, tx)
}

// GetMsg returns the carried message.
func (tx *Tx) GetMsg() (plasma.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	}
	return tx.Msg, nil
}

// GetSignatures returns the signatures on the tx.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign: the transaction without its
// signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	return codec.Marshal(&Tx{Msg: tx.Msg})
}
