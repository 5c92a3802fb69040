package token

import (
	"testing"

	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/errors"
	"github.com/zatoichi-labs/plasma/plasmatest"
	"github.com/zatoichi-labs/plasma/plasmatest/assert"
	"github.com/zatoichi-labs/plasma/store"
)

func TestRegistryDeposit(t *testing.T) {
	db := store.MemStore()
	r := NewRegistry()
	owner := plasmatest.NewCondition().Address()

	first, err := r.Deposit(db, owner, 5, 100)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1), first.ID)

	second, err := r.Deposit(db, owner, 6, 0)
	assert.Nil(t, err)
	assert.Equal(t, uint64(2), second.ID)

	got, err := r.Get(db, 1)
	assert.Nil(t, err)
	assert.Equal(t, &Token{ID: 1, Owner: owner, Status: Deposited, DepositHeight: 5, Amount: 100}, got)

	_, err = r.Get(db, 3)
	assert.IsErr(t, errors.ErrNotFound, err)

	_, err = r.Deposit(db, plasma.Address("bad"), 7, 0)
	assert.IsErr(t, errors.ErrInput, err)
}

func TestRegistryTransitions(t *testing.T) {
	cases := map[string]struct {
		path    []Status
		wantErr *errors.Error
		want    Status
	}{
		"start exit": {
			path: []Status{Exiting},
			want: Exiting,
		},
		"exit cancelled": {
			path: []Status{Exiting, Deposited},
			want: Deposited,
		},
		"exit again after cancellation": {
			path: []Status{Exiting, Deposited, Exiting},
			want: Exiting,
		},
		"withdraw": {
			path: []Status{Exiting, Withdrawn},
			want: Withdrawn,
		},
		"cannot withdraw without exit": {
			path:    []Status{Withdrawn},
			wantErr: errors.ErrState,
			want:    Deposited,
		},
		"withdrawn is terminal": {
			path:    []Status{Exiting, Withdrawn, Deposited},
			wantErr: errors.ErrState,
			want:    Withdrawn,
		},
		"cannot exit twice": {
			path:    []Status{Exiting, Exiting},
			wantErr: errors.ErrState,
			want:    Exiting,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			r := NewRegistry()
			tok, err := r.Deposit(db, plasmatest.NewCondition().Address(), 1, 0)
			assert.Nil(t, err)

			var lastErr error
			for _, s := range tc.path {
				if _, err := r.SetStatus(db, tok.ID, s); err != nil {
					lastErr = err
					break
				}
			}
			assert.IsErr(t, tc.wantErr, lastErr)

			got, err := r.Get(db, tok.ID)
			assert.Nil(t, err)
			assert.Equal(t, tc.want, got.Status)
		})
	}
}

func TestRegistrySetOwner(t *testing.T) {
	db := store.MemStore()
	r := NewRegistry()
	alice := plasmatest.NewCondition().Address()
	bob := plasmatest.NewCondition().Address()

	tok, err := r.Deposit(db, alice, 1, 0)
	assert.Nil(t, err)

	_, err = r.SetStatus(db, tok.ID, Exiting)
	assert.Nil(t, err)
	tok, err = r.SetOwner(db, tok.ID, bob)
	assert.Nil(t, err)
	assert.Equal(t, bob, tok.Owner)

	_, err = r.SetStatus(db, tok.ID, Withdrawn)
	assert.Nil(t, err)
	_, err = r.SetOwner(db, tok.ID, alice)
	assert.IsErr(t, errors.ErrState, err)

	_, err = r.SetOwner(db, 99, alice)
	assert.IsErr(t, errors.ErrNotFound, err)
}
