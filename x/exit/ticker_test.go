package exit

import (
	"context"
	"testing"

	"github.com/zatoichi-labs/plasma/errors"
	"github.com/zatoichi-labs/plasma/plasmatest"
	"github.com/zatoichi-labs/plasma/plasmatest/assert"
	"github.com/zatoichi-labs/plasma/x/token"
)

func TestFinalizeTicker(t *testing.T) {
	f := newFixture(t, defaultConf())
	alice := plasmatest.NewKey()
	f.fund(t, addr(alice), 100)
	first := f.deposit(t, addr(alice), 1, 5)
	second := f.deposit(t, addr(alice), 2, 5)
	for _, id := range []uint64{second, first} {
		_, err := f.machine.RequestExit(at(3), f.db, id, addr(alice), nil)
		assert.Nil(t, err)
	}

	ticker := NewFinalizeTicker(f.machine)

	res, err := ticker.Tick(at(12), f.db)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(res.Tags))

	res, err = ticker.Tick(at(13), f.db)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(res.Tags))
	assert.Equal(t, "withdrawn", string(res.Tags[0].Key))
	assert.Equal(t, "1", string(res.Tags[0].Value))
	assert.Equal(t, "2", string(res.Tags[1].Value))
	assert.Equal(t, token.Withdrawn, f.token(t, first).Status)
	assert.Equal(t, token.Withdrawn, f.token(t, second).Status)

	res, err = ticker.Tick(at(13), f.db)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(res.Tags))
}

func TestFinalizeTickerRequiresHeight(t *testing.T) {
	f := newFixture(t, defaultConf())
	_, err := NewFinalizeTicker(f.machine).Tick(context.Background(), f.db)
	assert.IsErr(t, errors.ErrHuman, err)
}

func TestFinalizeTickerRollback(t *testing.T) {
	f := newFixture(t, defaultConf())
	alice := plasmatest.NewKey()
	f.fund(t, addr(alice), 100)
	ok := f.deposit(t, addr(alice), 1, 5)
	broken := f.deposit(t, addr(alice), 2, 5)
	for _, id := range []uint64{ok, broken} {
		_, err := f.machine.RequestExit(at(3), f.db, id, addr(alice), nil)
		assert.Nil(t, err)
	}

	// Drain the vault so that the second payout fails.
	assert.Nil(t, f.bank.Transfer(f.db, token.VaultAddress, plasmatest.NewCondition().Address(), 5))

	before := f.snapshot(t)
	_, err := NewFinalizeTicker(f.machine).Tick(at(13), f.db)
	assert.IsErr(t, errors.ErrInsufficientAmount, err)
	assert.Equal(t, before, f.snapshot(t))
}
