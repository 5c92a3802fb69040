package app

import (
	"github.com/zatoichi-labs/plasma/commands"
	"github.com/zatoichi-labs/plasma/crypto"
	"github.com/zatoichi-labs/plasma/x/exit"
	"github.com/zatoichi-labs/plasma/x/proof"
	"github.com/zatoichi-labs/plasma/x/sigs"
	"github.com/zatoichi-labs/plasma/x/token"
)

// Examples generates some example structs to dump out with testgen. The
// keys are derived from fixed seeds, so the output is stable.
func Examples() []commands.Example {
	owner := crypto.PrivKeyEd25519FromSeed(seed(1))
	buyer := crypto.PrivKeyEd25519FromSeed(seed(2))
	ownerAddr := owner.PublicKey().Address()
	buyerAddr := buyer.PublicKey().Address()

	block := proof.NewBlock(2)
	transfer, err := proof.SignTransfer(owner, 1, buyerAddr, 2)
	if err != nil {
		panic(err)
	}
	if err := block.Add(transfer); err != nil {
		panic(err)
	}
	block.Seal()

	deposit := &token.DepositMsg{Owner: ownerAddr, Amount: 50}
	request := &exit.RequestExitMsg{TokenID: 1, Claimant: buyerAddr, History: []proof.Transfer{*transfer}}
	challenge := &exit.ChallengeExitMsg{
		TokenID:    1,
		Challenger: ownerAddr,
		Disproof:   exit.Disproof{Kind: exit.DisproofSpend, Transfer: *transfer},
	}

	return []commands.Example{
		{Filename: "token", Obj: &token.Token{ID: 1, Owner: ownerAddr, Status: token.Deposited, DepositHeight: 1, Amount: 50}},
		{Filename: "transfer", Obj: transfer},
		{Filename: "deposit_msg", Obj: deposit},
		{Filename: "request_exit_msg", Obj: request},
		{Filename: "challenge_exit_msg", Obj: challenge},
		{Filename: "unsigned_tx", Obj: &Tx{Msg: request}},
		{Filename: "signed_tx", Obj: mustSign(buyer, &Tx{Msg: request})},
	}
}

func mustSign(key *crypto.PrivateKey, tx *Tx) *Tx {
	sig, err := sigs.SignTx(key, tx, "test-plasma", 0)
	if err != nil {
		panic(err)
	}
	tx.Signatures = []*sigs.StdSignature{sig}
	return tx
}

func seed(b byte) []byte {
	s := make([]byte, 32)
	s[31] = b
	return s
}
