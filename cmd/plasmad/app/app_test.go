package app

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/app"
	"github.com/zatoichi-labs/plasma/codec"
	"github.com/zatoichi-labs/plasma/crypto"
	"github.com/zatoichi-labs/plasma/errors"
	"github.com/zatoichi-labs/plasma/x/cash"
	"github.com/zatoichi-labs/plasma/x/exit"
	"github.com/zatoichi-labs/plasma/x/sigs"
	"github.com/zatoichi-labs/plasma/x/token"
)

const chainID = "test-plasma"

type testChain struct {
	t      *testing.T
	app    app.BaseApp
	height int64
}

func newTestChain(t *testing.T, genesis string) *testChain {
	t.Helper()
	base, err := Application("plasmad", "", false)
	require.NoError(t, err)
	base.InitChain(abci.RequestInitChain{ChainId: chainID, AppStateBytes: []byte(genesis)})
	return &testChain{t: t, app: base}
}

// block delivers the transactions in a new block and returns their
// results together with the end block response.
func (c *testChain) block(txs ...[]byte) ([]abci.ResponseDeliverTx, abci.ResponseEndBlock) {
	c.height++
	c.app.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: c.height}})
	res := make([]abci.ResponseDeliverTx, len(txs))
	for i, tx := range txs {
		res[i] = c.app.DeliverTx(tx)
	}
	end := c.app.EndBlock(abci.RequestEndBlock{Height: c.height})
	c.app.Commit()
	return res, end
}

func (c *testChain) query(path string, data []byte, obj plasma.Persistent) {
	c.t.Helper()
	res := c.app.Query(abci.RequestQuery{Path: path, Data: data})
	require.Equal(c.t, uint32(0), res.Code, res.Log)
	require.NoError(c.t, app.UnmarshalOneResult(res.Value, obj))
}

func signTx(t *testing.T, key *crypto.PrivateKey, seq int64, msg plasma.Msg) []byte {
	t.Helper()
	tx := &Tx{Msg: msg}
	sig, err := sigs.SignTx(key, tx, chainID, seq)
	require.NoError(t, err)
	tx.Signatures = []*sigs.StdSignature{sig}
	bz, err := tx.Marshal()
	require.NoError(t, err)
	return bz
}

func testGenesis(operator, alice plasma.Address) string {
	return fmt.Sprintf(`{
		"cash": [
			{"address": "%s", "amount": 1000},
			{"address": "%s", "amount": 100}
		],
		"conf": {
			"commitment": {"owner": "%s", "operators": ["%s"]},
			"exit": {"owner": "%s", "window": 3, "bond": 10, "challenger_share": "1/2"}
		}
	}`, operator, alice, operator, operator, operator)
}

func TestDepositAndExit(t *testing.T) {
	operator := crypto.GenPrivKeyEd25519()
	alice := crypto.GenPrivKeyEd25519()
	aliceAddr := alice.PublicKey().Address()
	chain := newTestChain(t, testGenesis(operator.PublicKey().Address(), aliceAddr))
	assert.Equal(t, chainID, chain.app.GetChainID())

	// block 1: deposit
	deposit := signTx(t, alice, 0, &token.DepositMsg{Owner: aliceAddr, Amount: 50})
	chk := chain.app.CheckTx(deposit)
	require.Equal(t, uint32(0), chk.Code, chk.Log)
	res, _ := chain.block(deposit)
	require.Equal(t, uint32(0), res[0].Code, res[0].Log)
	assert.Equal(t, token.Key(1), res[0].Data)

	var tok token.Token
	chain.query("/tokens", token.Key(1), &tok)
	assert.Equal(t, token.Deposited, tok.Status)
	assert.Equal(t, int64(1), tok.DepositHeight)

	// replaying the same signed transaction fails on the sequence
	res, _ = chain.block(deposit)
	assert.NotEqual(t, uint32(0), res[0].Code)

	// block 3: exit request, window ends at block 6
	request := signTx(t, alice, 1, &exit.RequestExitMsg{TokenID: 1, Claimant: aliceAddr})
	res, end := chain.block(request)
	require.Equal(t, uint32(0), res[0].Code, res[0].Log)
	assert.Empty(t, end.Tags)

	var w cash.Wallet
	chain.query("/wallets", aliceAddr, &w)
	assert.Equal(t, cash.Wallet{Available: 40, Locked: 10}, w)

	// a second request is rejected with the exit error code
	again := signTx(t, alice, 2, &exit.RequestExitMsg{TokenID: 1, Claimant: aliceAddr})
	res, _ = chain.block(again)
	assert.Equal(t, exit.ErrAlreadyExiting.ABCICode(), res[0].Code)

	_, end = chain.block()
	assert.Empty(t, end.Tags)
	_, end = chain.block()
	require.Len(t, end.Tags, 1)
	assert.Equal(t, "withdrawn", string(end.Tags[0].Key))
	assert.Equal(t, "1", string(end.Tags[0].Value))

	chain.query("/tokens", token.Key(1), &tok)
	assert.Equal(t, token.Withdrawn, tok.Status)
	var paid cash.Wallet
	chain.query("/wallets", aliceAddr, &paid)
	assert.Equal(t, cash.Wallet{Available: 100}, paid)
}

func TestUnauthorizedTx(t *testing.T) {
	operator := crypto.GenPrivKeyEd25519()
	alice := crypto.GenPrivKeyEd25519()
	mallory := crypto.GenPrivKeyEd25519()
	chain := newTestChain(t, testGenesis(operator.PublicKey().Address(), alice.PublicKey().Address()))

	// mallory cannot deposit on behalf of alice
	tx := signTx(t, mallory, 0, &token.DepositMsg{Owner: alice.PublicKey().Address(), Amount: 1})
	res, _ := chain.block(tx)
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), res[0].Code)

	// nor cancel an exit that does not exist
	sub := signTx(t, mallory, 1, &exit.CancelExitMsg{TokenID: 1, Claimant: mallory.PublicKey().Address()})
	res, _ = chain.block(sub)
	assert.NotEqual(t, uint32(0), res[0].Code)

	// garbage is rejected
	res, _ = chain.block([]byte("not a transaction"))
	assert.NotEqual(t, uint32(0), res[0].Code)
}

func TestGenInitOptions(t *testing.T) {
	key := crypto.GenPrivKeyEd25519()
	addr := key.PublicKey().Address()
	opts, err := GenInitOptions([]string{addr.String()})
	require.NoError(t, err)

	base, err := Application("plasmad", "", false)
	require.NoError(t, err)
	base.InitChain(abci.RequestInitChain{ChainId: chainID, AppStateBytes: opts})
	base.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1}})
	base.EndBlock(abci.RequestEndBlock{})
	base.Commit()

	kv := app.NewABCIStore(base)
	w, err := cash.NewBucket().Get(kv, addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(defaultBalance), w.Available)

	_, err = GenInitOptions([]string{"zz"})
	assert.Error(t, err)
}

func TestTxEncoding(t *testing.T) {
	key := crypto.GenPrivKeyEd25519()
	msg := &cash.SendMsg{
		Source:      key.PublicKey().Address(),
		Destination: crypto.GenPrivKeyEd25519().PublicKey().Address(),
		Amount:      7,
		Memo:        "rent",
	}
	bz := signTx(t, key, 3, msg)

	tx, err := TxDecoder(bz)
	require.NoError(t, err)
	got, err := tx.GetMsg()
	require.NoError(t, err)
	assert.Equal(t, msg, got)
	assert.Equal(t, "cash/send", plasma.GetPath(tx))

	signed := tx.(*Tx)
	require.Len(t, signed.Signatures, 1)
	assert.Equal(t, int64(3), signed.Signatures[0].Sequence)

	_, err = (&Tx{}).GetMsg()
	assert.True(t, errors.ErrMsg.Is(err))
}

func TestExamples(t *testing.T) {
	for _, ex := range Examples() {
		_, err := codec.Marshal(ex.Obj)
		assert.NoError(t, err, ex.Filename)
	}
}
