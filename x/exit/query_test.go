package exit

import (
	"testing"

	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/errors"
	"github.com/zatoichi-labs/plasma/plasmatest"
	"github.com/zatoichi-labs/plasma/plasmatest/assert"
	"github.com/zatoichi-labs/plasma/x/proof"
	"github.com/zatoichi-labs/plasma/x/token"
)

func TestQueries(t *testing.T) {
	f := newFixture(t, defaultConf())
	alice := plasmatest.NewKey()
	f.fund(t, addr(alice), 100)
	late := f.deposit(t, addr(alice), 9, 0)
	early := f.deposit(t, addr(alice), 4, 0)
	idle := f.deposit(t, addr(alice), 5, 0)
	for _, id := range []uint64{late, early} {
		_, err := f.machine.RequestExit(at(10), f.db, id, addr(alice), nil)
		assert.Nil(t, err)
	}

	status, err := f.machine.TokenStatus(f.db, idle)
	assert.Nil(t, err)
	assert.Equal(t, token.Deposited, status.Token.Status)
	if status.Claim != nil {
		t.Fatalf("unexpected claim %+v", status.Claim)
	}

	status, err = f.machine.TokenStatus(f.db, early)
	assert.Nil(t, err)
	assert.Equal(t, token.Exiting, status.Token.Status)
	assert.Equal(t, uint64(2), status.Claim.ID)

	_, err = f.machine.TokenStatus(f.db, 99)
	assert.IsErr(t, errors.ErrNotFound, err)

	qr := plasma.NewQueryRouter()
	RegisterQuery(qr, f.machine)

	res, err := qr.Handler("/exits").Query(f.db, plasma.KeyQueryMod, claimKey(1))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res))
	var claim ExitClaim
	assert.Nil(t, claim.Unmarshal(res[0].Value))
	assert.Equal(t, late, claim.TokenID)

	res, err = qr.Handler("/exits/pending").Query(f.db, plasma.KeyQueryMod, nil)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(res))
	assert.Equal(t, claimKey(2), res[0].Key)
	assert.Equal(t, claimKey(1), res[1].Key)

	_, err = qr.Handler("/exits/pending").Query(f.db, plasma.PrefixQueryMod, nil)
	assert.IsErr(t, errors.ErrInput, err)
}

func TestClaimValidate(t *testing.T) {
	claimant := plasmatest.NewCondition().Address()
	valid := func() ExitClaim {
		return ExitClaim{
			ID:                 1,
			TokenID:            2,
			Claimant:           claimant,
			ExitableAt:         3,
			RequestHeight:      4,
			ChallengePeriodEnd: 5,
			State:              Pending,
		}
	}

	cases := map[string]struct {
		mutate  func(c *ExitClaim)
		wantErr *errors.Error
	}{
		"valid": {
			mutate: func(c *ExitClaim) {},
		},
		"exitable after request": {
			mutate:  func(c *ExitClaim) { c.ExitableAt = 5 },
			wantErr: errors.ErrInput,
		},
		"window not after request": {
			mutate:  func(c *ExitClaim) { c.ChallengePeriodEnd = 4 },
			wantErr: errors.ErrInput,
		},
		"unknown state": {
			mutate:  func(c *ExitClaim) { c.State = 9 },
			wantErr: errors.ErrState,
		},
		"missing claimant": {
			mutate:  func(c *ExitClaim) { c.Claimant = nil },
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			c := valid()
			tc.mutate(&c)
			assert.IsErr(t, tc.wantErr, c.Validate())
		})
	}
}

func TestClaimEncoding(t *testing.T) {
	alice, bob := plasmatest.NewKey(), plasmatest.NewKey()
	ab := mustSign(t, alice, 2, addr(bob), 3)
	claim := ExitClaim{
		ID:                 1,
		TokenID:            2,
		Claimant:           addr(bob),
		ExitableAt:         3,
		RequestHeight:      4,
		ChallengePeriodEnd: 14,
		Bond:               10,
		State:              Challenged,
		History:            []proof.Transfer{*ab},
	}
	bz, err := claim.Marshal()
	assert.Nil(t, err)

	var got ExitClaim
	assert.Nil(t, got.Unmarshal(bz))
	assert.Equal(t, claim.ID, got.ID)
	assert.Equal(t, claim.Claimant, got.Claimant)
	assert.Equal(t, claim.ChallengePeriodEnd, got.ChallengePeriodEnd)
	assert.Equal(t, claim.Bond, got.Bond)
	assert.Equal(t, Challenged, got.State)
	assert.Equal(t, 1, len(got.History))
	h := got.History[0]
	assert.Equal(t, ab.SignBytes(), h.SignBytes())
	assert.Equal(t, ab.Signature, h.Signature)
	assert.Equal(t, ab.PubKey.Ed25519, h.PubKey.Ed25519)
	assert.Nil(t, h.Validate())

	again, err := got.Marshal()
	assert.Nil(t, err)
	assert.Equal(t, bz, again)
}
