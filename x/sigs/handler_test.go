package sigs

import (
	"context"
	"testing"

	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/errors"
	"github.com/zatoichi-labs/plasma/plasmatest"
	"github.com/zatoichi-labs/plasma/plasmatest/assert"
	"github.com/zatoichi-labs/plasma/store"
)

type handlerRouter map[string]plasma.Handler

func (r handlerRouter) Handle(path string, h plasma.Handler) {
	r[path] = h
}

func TestBumpSequence(t *testing.T) {
	key := plasmatest.NewKey()
	stranger := plasmatest.NewKey()

	cases := map[string]struct {
		initSeq   int64
		signer    plasma.Condition
		msg       *BumpSequenceMsg
		wantErr   *errors.Error
		wantNonce int64
	}{
		"increment by one is a noop": {
			initSeq:   3,
			signer:    key.PublicKey().Condition(),
			msg:       &BumpSequenceMsg{Increment: 1},
			wantNonce: 3,
		},
		"increment by many": {
			initSeq:   3,
			signer:    key.PublicKey().Condition(),
			msg:       &BumpSequenceMsg{Increment: 10},
			wantNonce: 12,
		},
		"increment too big": {
			signer:  key.PublicKey().Condition(),
			msg:     &BumpSequenceMsg{Increment: 1001},
			wantErr: errors.ErrMsg,
		},
		"signer without sequence": {
			signer:  stranger.PublicKey().Condition(),
			msg:     &BumpSequenceMsg{Increment: 2},
			wantErr: errors.ErrNotFound,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			bucket := NewBucket()
			assert.Nil(t, bucket.Save(db, &UserData{Sequence: tc.initSeq, Pubkey: key.PublicKey()}))

			auth := &plasmatest.Auth{Signer: tc.signer}
			r := make(handlerRouter)
			RegisterRoutes(r, auth)
			h := r[pathBumpSequenceMsg]

			tx := &plasmatest.Tx{Msg: tc.msg}
			_, err := h.Deliver(context.Background(), db, tx)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr != nil {
				return
			}
			nonce, err := NextNonce(db, key.PublicKey().Address())
			assert.Nil(t, err)
			assert.Equal(t, tc.wantNonce, nonce)
		})
	}
}
