package commitment

import (
	"context"
	"testing"

	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/errors"
	"github.com/zatoichi-labs/plasma/gconf"
	"github.com/zatoichi-labs/plasma/plasmatest"
	"github.com/zatoichi-labs/plasma/plasmatest/assert"
	"github.com/zatoichi-labs/plasma/store"
)

type router map[string]plasma.Handler

func (r router) Handle(path string, h plasma.Handler) {
	r[path] = h
}

func TestSubmitHandler(t *testing.T) {
	operator := plasmatest.NewCondition()
	stranger := plasmatest.NewCondition()

	cases := map[string]struct {
		signer         plasma.Condition
		blockHeight    int64
		msg            plasma.Msg
		wantCheckErr   *errors.Error
		wantDeliverErr *errors.Error
		wantLast       int64
	}{
		"operator submits a commitment": {
			signer:      operator,
			blockHeight: 10,
			msg:         &SubmitCommitmentMsg{Height: 10, Root: root(1), Submitter: operator.Address()},
			wantLast:    10,
		},
		"submitter must sign": {
			signer:         stranger,
			blockHeight:    10,
			msg:            &SubmitCommitmentMsg{Height: 10, Root: root(1), Submitter: operator.Address()},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
		},
		"submitter must be an operator": {
			signer:         stranger,
			blockHeight:    10,
			msg:            &SubmitCommitmentMsg{Height: 10, Root: root(1), Submitter: stranger.Address()},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
		},
		"commitment of a future block": {
			signer:         operator,
			blockHeight:    10,
			msg:            &SubmitCommitmentMsg{Height: 11, Root: root(1), Submitter: operator.Address()},
			wantCheckErr:   errors.ErrInput,
			wantDeliverErr: errors.ErrInput,
		},
		"invalid root": {
			signer:         operator,
			blockHeight:    10,
			msg:            &SubmitCommitmentMsg{Height: 10, Root: []byte{1}, Submitter: operator.Address()},
			wantCheckErr:   errors.ErrInput,
			wantDeliverErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			conf := &Configuration{Operators: []plasma.Address{operator.Address()}}
			assert.Nil(t, gconf.Save(db, confPkg, conf))

			log := NewLog()
			r := make(router)
			auth := &plasmatest.Auth{Signer: tc.signer}
			RegisterRoutes(r, auth, log)
			h := r[pathSubmitCommitmentMsg]

			ctx := plasma.WithHeight(context.Background(), tc.blockHeight)
			tx := &plasmatest.Tx{Msg: tc.msg}

			cache := db.CacheWrap()
			_, err := h.Check(ctx, cache, tx)
			assert.IsErr(t, tc.wantCheckErr, err)
			cache.Discard()

			res, err := h.Deliver(ctx, db, tx)
			assert.IsErr(t, tc.wantDeliverErr, err)
			if tc.wantDeliverErr == nil {
				assert.Equal(t, 1, len(res.Tags))
				assert.Equal(t, "commitment", string(res.Tags[0].Key))
			}

			last, err := log.Last(db)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantLast, last)
		})
	}
}

func TestUpdateOperators(t *testing.T) {
	owner := plasmatest.NewCondition()
	first := plasmatest.NewCondition().Address()
	second := plasmatest.NewCondition().Address()

	db := store.MemStore()
	assert.Nil(t, gconf.Save(db, confPkg, &Configuration{
		Owner:     owner.Address(),
		Operators: []plasma.Address{first},
	}))

	r := make(router)
	RegisterRoutes(r, &plasmatest.Auth{Signer: owner}, NewLog())
	h := r[pathUpdateConfigurationMsg]

	msg := &UpdateConfigurationMsg{Patch: &Configuration{Operators: []plasma.Address{second}}}
	_, err := h.Deliver(context.Background(), db, &plasmatest.Tx{Msg: msg})
	assert.Nil(t, err)

	conf, err := loadConf(db)
	assert.Nil(t, err)
	assert.Equal(t, owner.Address(), conf.Owner)
	assert.Equal(t, false, conf.IsOperator(first))
	assert.Equal(t, true, conf.IsOperator(second))
}
