package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/errors"
	"github.com/zatoichi-labs/plasma/plasmatest"
)

// pathDecoder treats the raw transaction bytes as the message path.
func pathDecoder(bz []byte) (plasma.Tx, error) {
	switch string(bz) {
	case "":
		return nil, errors.Wrap(errors.ErrInput, "empty tx")
	case "panic":
		panic("cannot decode")
	}
	return &plasmatest.Tx{Msg: &plasmatest.Msg{RoutePath: string(bz)}}, nil
}

func newBaseApp(t testing.TB, ticker plasma.Ticker) BaseApp {
	t.Helper()
	r := NewRouter()
	r.Handle("write", &plasmatest.WriteHandler{Key: []byte("written"), Value: []byte{1}})
	r.Handle("fail", &plasmatest.WriteHandler{Key: []byte("failed"), Value: []byte{1}, Err: errors.ErrState})

	store := newStoreApp(t).WithInit(dummyInit{})
	store.InitChain(abci.RequestInitChain{
		ChainId:       "test-chain-1",
		AppStateBytes: []byte(`{"dummy": "a"}`),
	})
	return NewBaseApp(store, pathDecoder, r, ticker, false)
}

func TestBaseAppTransactions(t *testing.T) {
	app := newBaseApp(t, nil)
	app.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1}})

	chk := app.CheckTx([]byte("write"))
	assert.Equal(t, uint32(0), chk.Code, chk.Log)
	res := app.DeliverTx([]byte("write"))
	assert.Equal(t, uint32(0), res.Code, res.Log)

	res = app.DeliverTx([]byte("fail"))
	assert.Equal(t, errors.ErrState.ABCICode(), res.Code)

	res = app.DeliverTx([]byte("unknown"))
	assert.Equal(t, errors.ErrNotRoute.ABCICode(), res.Code)

	res = app.DeliverTx(nil)
	assert.Equal(t, errors.ErrInput.ABCICode(), res.Code)

	chk = app.CheckTx([]byte("panic"))
	assert.Equal(t, errors.ErrPanic.ABCICode(), chk.Code)

	end := app.EndBlock(abci.RequestEndBlock{})
	assert.Empty(t, end.Tags)
	app.Commit()

	ok, err := NewABCIStore(app).Has([]byte("written"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBaseAppTicker(t *testing.T) {
	var heights []int64
	ticker := plasma.TickerFunc(func(ctx plasma.Context, db plasma.CacheableKVStore) (*plasma.TickResult, error) {
		h := plasma.MustGetHeight(ctx)
		heights = append(heights, h)
		if err := db.Set([]byte("ticked"), []byte{byte(h)}); err != nil {
			return nil, err
		}
		if h == 2 {
			return nil, errors.ErrInsufficientAmount
		}
		if h == 3 {
			panic("boom")
		}
		return &plasma.TickResult{Tags: []common.KVPair{plasma.Tag("ticked", nil)}}, nil
	})
	app := newBaseApp(t, ticker)

	for h := int64(1); h <= 3; h++ {
		app.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: h}})
		end := app.EndBlock(abci.RequestEndBlock{})
		if h == 1 {
			require.Len(t, end.Tags, 1)
			assert.Equal(t, "ticked", string(end.Tags[0].Key))
		} else {
			assert.Empty(t, end.Tags)
		}
		app.Commit()

		// failing ticks are rolled back
		v, err := app.DeliverStore().Get([]byte("ticked"))
		require.NoError(t, err)
		assert.Equal(t, []byte{1}, v)
	}
	assert.Equal(t, []int64{1, 2, 3}, heights)
}
