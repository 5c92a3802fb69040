package exit

import (
	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/errors"
	"github.com/zatoichi-labs/plasma/x/token"
)

// TokenState is the token record together with its pending claim, if any.
type TokenState struct {
	Token *token.Token `json:"token"`
	Claim *ExitClaim   `json:"claim,omitempty"`
}

// TokenStatus returns the state of the token. It fails with ErrNotFound for
// an unknown token.
func (m *Machine) TokenStatus(db plasma.ReadOnlyKVStore, tokenID uint64) (*TokenState, error) {
	tok, err := m.tokens.Get(db, tokenID)
	if err != nil {
		return nil, err
	}
	claim, err := m.Claim(db, tokenID)
	if err != nil {
		return nil, err
	}
	return &TokenState{Token: tok, Claim: claim}, nil
}

// PendingExits returns all pending claims in the order they would be
// finalized.
func (m *Machine) PendingExits(db plasma.ReadOnlyKVStore) ([]*ExitClaim, error) {
	entries, err := m.queue.List(db)
	if err != nil {
		return nil, err
	}
	claims := make([]*ExitClaim, 0, len(entries))
	for _, e := range entries {
		c, err := m.ClaimByID(db, e.ClaimID)
		if err != nil {
			return nil, err
		}
		claims = append(claims, c)
	}
	return claims, nil
}

// Register exposes claims by id under "/exits" and the pending claims in
// priority order under "/exits/pending".
func (m *Machine) Register(qr plasma.QueryRouter) {
	m.claims.Register("exits", qr)
	qr.Register("/exits/pending", pendingQuery{m: m})
}

type pendingQuery struct {
	m *Machine
}

func (q pendingQuery) Query(db plasma.ReadOnlyKVStore, mod string, data []byte) ([]plasma.Model, error) {
	if mod != plasma.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
	claims, err := q.m.PendingExits(db)
	if err != nil {
		return nil, err
	}
	res := make([]plasma.Model, 0, len(claims))
	for _, c := range claims {
		raw, err := c.Marshal()
		if err != nil {
			return nil, err
		}
		res = append(res, plasma.Pair(claimKey(c.ID), raw))
	}
	return res, nil
}
