package exit

import (
	"github.com/tendermint/tendermint/libs/common"
	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/errors"
)

// FinalizeTicker finalizes due exits at the end of every block.
type FinalizeTicker struct {
	machine *Machine
}

var _ plasma.Ticker = FinalizeTicker{}

// NewFinalizeTicker returns a ticker using given machine.
func NewFinalizeTicker(m *Machine) FinalizeTicker {
	return FinalizeTicker{machine: m}
}

// Tick finalizes every claim whose window elapsed at the current block
// height. Nothing is written unless all due claims were finalized.
func (t FinalizeTicker) Tick(ctx plasma.Context, db plasma.CacheableKVStore) (*plasma.TickResult, error) {
	height, err := blockHeight(ctx)
	if err != nil {
		return nil, err
	}

	claims, err := t.machine.FinalizeExits(ctx, db, height)
	if err != nil {
		return nil, errors.Wrapf(err, "finalize exits at %d", height)
	}

	res := &plasma.TickResult{Tags: make([]common.KVPair, 0, len(claims))}
	for _, c := range claims {
		res.Tags = append(res.Tags, tokenTag("withdrawn", c.TokenID))
		countClaim(Finalized)
	}
	return res, nil
}
