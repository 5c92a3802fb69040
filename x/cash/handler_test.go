package cash

import (
	"context"
	"testing"

	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/errors"
	"github.com/zatoichi-labs/plasma/plasmatest"
	"github.com/zatoichi-labs/plasma/plasmatest/assert"
	"github.com/zatoichi-labs/plasma/store"
)

func TestSendHandler(t *testing.T) {
	src := plasmatest.NewCondition()
	dst := plasmatest.NewCondition()

	cases := map[string]struct {
		signer         plasma.Condition
		msg            plasma.Msg
		wantCheckErr   *errors.Error
		wantDeliverErr *errors.Error
		wantSrc        uint64
		wantDst        uint64
	}{
		"send funds": {
			signer:  src,
			msg:     &SendMsg{Source: src.Address(), Destination: dst.Address(), Amount: 40},
			wantSrc: 60,
			wantDst: 40,
		},
		"source must sign": {
			signer:         dst,
			msg:            &SendMsg{Source: src.Address(), Destination: dst.Address(), Amount: 40},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
			wantSrc:        100,
		},
		"insufficient funds are detected on deliver": {
			signer:         src,
			msg:            &SendMsg{Source: src.Address(), Destination: dst.Address(), Amount: 101},
			wantDeliverErr: errors.ErrInsufficientAmount,
			wantSrc:        100,
		},
		"invalid message": {
			signer:         src,
			msg:            &SendMsg{Source: src.Address(), Destination: dst.Address()},
			wantCheckErr:   errors.ErrAmount,
			wantDeliverErr: errors.ErrAmount,
			wantSrc:        100,
		},
		"wrong message type": {
			signer:         src,
			msg:            &plasmatest.Msg{RoutePath: pathSendMsg},
			wantCheckErr:   errors.ErrType,
			wantDeliverErr: errors.ErrType,
			wantSrc:        100,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			control := NewController(NewBucket())
			assert.Nil(t, control.Issue(db, src.Address(), 100))

			auth := &plasmatest.Auth{Signer: tc.signer}
			h := NewSendHandler(auth, control)
			tx := &plasmatest.Tx{Msg: tc.msg}

			cache := db.CacheWrap()
			_, err := h.Check(context.Background(), cache, tx)
			assert.IsErr(t, tc.wantCheckErr, err)
			cache.Discard()

			_, err = h.Deliver(context.Background(), db, tx)
			assert.IsErr(t, tc.wantDeliverErr, err)

			assertBalance(t, control, db, src.Address(), tc.wantSrc, 0)
			assertBalance(t, control, db, dst.Address(), tc.wantDst, 0)
		})
	}
}
