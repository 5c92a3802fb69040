package exit

import (
	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/errors"
	"github.com/zatoichi-labs/plasma/orm"
	"github.com/zatoichi-labs/plasma/x/cash"
	"github.com/zatoichi-labs/plasma/x/exitqueue"
	"github.com/zatoichi-labs/plasma/x/proof"
	"github.com/zatoichi-labs/plasma/x/token"
)

// Machine runs the exit game. All state is kept in the store passed to
// each call. RequestExit, ChallengeExit and CancelExit check every
// precondition before the first write and are run inside a savepoint by the
// application. FinalizeExits works on a cache wrap of its own. A failing
// call leaves the store unchanged.
type Machine struct {
	tokens   *token.Registry
	queue    *exitqueue.Queue
	verifier *proof.Verifier
	bank     cash.Controller

	claims       orm.ModelBucket
	active       orm.ModelBucket
	challenges   orm.ModelBucket
	claimIDs     orm.Sequence
	challengeIDs orm.Sequence
}

// NewMachine returns the exit state machine.
func NewMachine(tokens *token.Registry, queue *exitqueue.Queue, verifier *proof.Verifier, bank cash.Controller) *Machine {
	return &Machine{
		tokens:       tokens,
		queue:        queue,
		verifier:     verifier,
		bank:         bank,
		claims:       orm.NewModelBucket("exit"),
		active:       orm.NewModelBucket("exit_active"),
		challenges:   orm.NewModelBucket("exit_chal"),
		claimIDs:     orm.NewSequence("exit", "id"),
		challengeIDs: orm.NewSequence("exit_chal", "id"),
	}
}

// RequestExit creates a pending claim for a deposited token. The history
// must lead from the deposit to the claimant.
func (m *Machine) RequestExit(
	ctx plasma.Context,
	db plasma.KVStore,
	tokenID uint64,
	claimant plasma.Address,
	history []proof.Transfer,
) (*ExitClaim, error) {
	height, err := blockHeight(ctx)
	if err != nil {
		return nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	tok, err := m.tokens.Get(db, tokenID)
	if err != nil {
		return nil, err
	}
	switch existing, err := m.Claim(db, tokenID); {
	case err != nil:
		return nil, err
	case existing != nil:
		return nil, errors.Wrapf(ErrAlreadyExiting, "token %d has claim %d", tokenID, existing.ID)
	}
	switch tok.Status {
	case token.Deposited:
	case token.Exiting:
		return nil, errors.Wrapf(ErrAlreadyExiting, "token %d", tokenID)
	default:
		return nil, errors.Wrapf(errors.ErrState, "token %d is %s", tokenID, tok.Status)
	}

	origin := proof.Origin{Owner: tok.Owner, Height: tok.DepositHeight}
	exitableAt, err := m.verifier.VerifyHistory(db, tokenID, origin, history, claimant)
	if err != nil {
		return nil, errors.WithKind(ErrInvalidHistory, err)
	}

	if conf.Bond > 0 {
		if err := m.bank.Lock(db, claimant, conf.Bond); err != nil {
			return nil, errors.Wrap(err, "cannot lock bond")
		}
	}
	id, err := m.claimIDs.NextInt(db)
	if err != nil {
		return nil, errors.Wrap(err, "cannot acquire claim id")
	}
	claim := &ExitClaim{
		ID:                 uint64(id),
		TokenID:            tokenID,
		Claimant:           claimant,
		ExitableAt:         exitableAt,
		RequestHeight:      height,
		ChallengePeriodEnd: height + conf.Window,
		Bond:               conf.Bond,
		State:              Pending,
		History:            history,
	}
	if err := m.claims.Put(db, claimKey(claim.ID), claim); err != nil {
		return nil, errors.Wrap(err, "cannot store claim")
	}
	if err := m.active.Put(db, token.Key(tokenID), &activeClaim{ClaimID: claim.ID}); err != nil {
		return nil, errors.Wrap(err, "cannot index claim")
	}
	if _, err := m.tokens.SetStatus(db, tokenID, token.Exiting); err != nil {
		return nil, err
	}
	entry := &exitqueue.Entry{
		TokenID:            tokenID,
		ClaimID:            claim.ID,
		ExitableAt:         claim.ExitableAt,
		ChallengePeriodEnd: claim.ChallengePeriodEnd,
	}
	if err := m.queue.Insert(db, entry); err != nil {
		return nil, err
	}

	plasma.GetLogger(ctx).Info("exit requested",
		"token", tokenID, "claim", claim.ID, "claimant", claimant,
		"exitable_at", claim.ExitableAt, "challenge_period_end", claim.ChallengePeriodEnd)
	return claim, nil
}

// ChallengeExit cancels the pending claim of the token if the disproof
// holds. The bond of the claimant is forfeited. A disproof that does not
// hold fails with ErrInvalidChallenge and does not change the claim.
func (m *Machine) ChallengeExit(
	ctx plasma.Context,
	db plasma.KVStore,
	tokenID uint64,
	challenger plasma.Address,
	d *Disproof,
) (*ExitClaim, error) {
	height, err := blockHeight(ctx)
	if err != nil {
		return nil, err
	}
	claim, err := m.pendingClaim(db, tokenID)
	if err != nil {
		return nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if err := m.checkDisproof(db, claim, d); err != nil {
		return nil, errors.WithKind(ErrInvalidChallenge, err)
	}

	reward, err := conf.ChallengerShare.Portion(claim.Bond)
	if err != nil {
		return nil, errors.Wrap(err, "challenger share")
	}
	burned := claim.Bond - reward
	if reward > 0 {
		if err := m.bank.Forfeit(db, claim.Claimant, challenger, reward); err != nil {
			return nil, errors.Wrap(err, "cannot pay challenger")
		}
	}
	if burned > 0 {
		if err := m.bank.Burn(db, claim.Claimant, burned); err != nil {
			return nil, errors.Wrap(err, "cannot burn bond")
		}
	}
	if err := m.close(db, claim, Challenged); err != nil {
		return nil, err
	}
	if _, err := m.queue.Remove(db, tokenID); err != nil {
		return nil, err
	}
	if _, err := m.tokens.SetStatus(db, tokenID, token.Deposited); err != nil {
		return nil, err
	}

	rid, err := m.challengeIDs.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "cannot acquire record id")
	}
	record := &ChallengeRecord{
		ClaimID:    claim.ID,
		TokenID:    tokenID,
		Challenger: challenger,
		Kind:       d.Kind,
		Proof:      d.Transfer,
		Reward:     reward,
		Burned:     burned,
		Height:     height,
	}
	if err := m.challenges.Put(db, rid, record); err != nil {
		return nil, errors.Wrap(err, "cannot store challenge record")
	}

	plasma.GetLogger(ctx).Info("exit challenged",
		"token", tokenID, "claim", claim.ID, "challenger", challenger,
		"kind", d.Kind, "reward", reward, "burned", burned)
	return claim, nil
}

// checkDisproof returns nil if the disproof invalidates the claim.
func (m *Machine) checkDisproof(db plasma.KVStore, claim *ExitClaim, d *Disproof) error {
	if err := d.Validate(); err != nil {
		return err
	}
	t := &d.Transfer
	if t.TokenID != claim.TokenID {
		return errors.Wrapf(errors.ErrInput, "transfer of token %d", t.TokenID)
	}
	if err := m.verifier.VerifyTransfer(db, t); err != nil {
		return err
	}

	switch d.Kind {
	case DisproofSpend:
		if !t.From.Equals(claim.Claimant) {
			return errors.Wrap(errors.ErrInput, "transfer not sent by the claimant")
		}
		if t.Height <= claim.ExitableAt {
			return errors.Wrapf(errors.ErrInput, "transfer height %d not above %d", t.Height, claim.ExitableAt)
		}
		if t.To.Equals(claim.Claimant) {
			return errors.Wrap(errors.ErrInput, "transfer to the claimant")
		}
		return nil
	case DisproofDoubleSpend:
		if int(d.Step) >= len(claim.History) {
			return errors.Wrapf(errors.ErrInput, "step %d of %d", d.Step, len(claim.History))
		}
		step := claim.History[d.Step]
		var after int64
		if d.Step == 0 {
			tok, err := m.tokens.Get(db, claim.TokenID)
			if err != nil {
				return err
			}
			after = tok.DepositHeight
		} else {
			after = claim.History[d.Step-1].Height
		}
		if !t.From.Equals(step.From) {
			return errors.Wrapf(errors.ErrInput, "transfer not sent by %s", step.From)
		}
		if t.Height <= after || t.Height >= step.Height {
			return errors.Wrapf(errors.ErrInput, "transfer height %d not between %d and %d", t.Height, after, step.Height)
		}
		if t.To.Equals(step.To) {
			return errors.Wrap(errors.ErrInput, "transfer to the same recipient")
		}
		return nil
	default:
		return errors.Wrapf(errors.ErrInput, "unknown disproof kind %d", int32(d.Kind))
	}
}

// FinalizeExits withdraws every token whose claim was not challenged within
// its window. Claims are finalized in priority order. Calling it again at
// the same height finalizes nothing. All changes are written only if every
// due claim was finalized.
func (m *Machine) FinalizeExits(ctx plasma.Context, db plasma.CacheableKVStore, height int64) ([]*ExitClaim, error) {
	cache := db.CacheWrap()
	finalized, err := m.finalizeDue(ctx, cache, height)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "cannot write finalized exits")
	}

	logger := plasma.GetLogger(ctx)
	for _, c := range finalized {
		logger.Info("exit finalized", "token", c.TokenID, "claim", c.ID, "owner", c.Claimant)
	}
	return finalized, nil
}

func (m *Machine) finalizeDue(ctx plasma.Context, db plasma.KVStore, height int64) ([]*ExitClaim, error) {
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}

	var due []*exitqueue.Entry
	if conf.StrictPriority {
		for {
			e, err := m.queue.PeekMin(db)
			if errors.ErrEmpty.Is(err) {
				break
			}
			if err != nil {
				return nil, err
			}
			if e.ChallengePeriodEnd > height {
				break
			}
			if _, err := m.queue.PopMin(db); err != nil {
				return nil, err
			}
			due = append(due, e)
		}
	} else {
		if due, err = m.queue.Ready(db, height); err != nil {
			return nil, err
		}
		for _, e := range due {
			if _, err := m.queue.Remove(db, e.TokenID); err != nil {
				return nil, err
			}
		}
	}

	finalized := make([]*ExitClaim, 0, len(due))
	for _, e := range due {
		claim, err := m.finalize(db, e)
		if err != nil {
			return nil, errors.Wrapf(err, "token %d", e.TokenID)
		}
		finalized = append(finalized, claim)
	}
	return finalized, nil
}

func (m *Machine) finalize(db plasma.KVStore, e *exitqueue.Entry) (*ExitClaim, error) {
	var claim ExitClaim
	if err := m.claims.One(db, claimKey(e.ClaimID), &claim); err != nil {
		return nil, errors.Wrapf(err, "claim %d", e.ClaimID)
	}
	if claim.State != Pending {
		return nil, errors.Wrapf(errors.ErrState, "queued claim %d is %s", claim.ID, claim.State)
	}

	tok, err := m.tokens.SetOwner(db, claim.TokenID, claim.Claimant)
	if err != nil {
		return nil, err
	}
	if _, err := m.tokens.SetStatus(db, claim.TokenID, token.Withdrawn); err != nil {
		return nil, err
	}
	if claim.Bond > 0 {
		if err := m.bank.Release(db, claim.Claimant, claim.Bond); err != nil {
			return nil, errors.Wrap(err, "cannot release bond")
		}
	}
	if tok.Amount > 0 {
		if err := m.bank.Transfer(db, token.VaultAddress, claim.Claimant, tok.Amount); err != nil {
			return nil, errors.Wrap(err, "cannot pay out deposit")
		}
	}
	if err := m.close(db, &claim, Finalized); err != nil {
		return nil, err
	}

	return &claim, nil
}

// CancelExit drops the pending claim of the token on request of the
// claimant. The bond is returned.
func (m *Machine) CancelExit(ctx plasma.Context, db plasma.KVStore, tokenID uint64, caller plasma.Address) (*ExitClaim, error) {
	claim, err := m.pendingClaim(db, tokenID)
	if err != nil {
		return nil, err
	}
	if !claim.Claimant.Equals(caller) {
		return nil, errors.Wrapf(ErrNotClaimant, "claim %d belongs to %s", claim.ID, claim.Claimant)
	}

	if claim.Bond > 0 {
		if err := m.bank.Release(db, claim.Claimant, claim.Bond); err != nil {
			return nil, errors.Wrap(err, "cannot release bond")
		}
	}
	if err := m.close(db, claim, Cancelled); err != nil {
		return nil, err
	}
	if _, err := m.queue.Remove(db, tokenID); err != nil {
		return nil, err
	}
	if _, err := m.tokens.SetStatus(db, tokenID, token.Deposited); err != nil {
		return nil, err
	}

	plasma.GetLogger(ctx).Info("exit cancelled", "token", tokenID, "claim", claim.ID)
	return claim, nil
}

// close moves a pending claim to its final state and drops it from the
// active index.
func (m *Machine) close(db plasma.KVStore, claim *ExitClaim, state ClaimState) error {
	claim.State = state
	if err := m.claims.Put(db, claimKey(claim.ID), claim); err != nil {
		return errors.Wrap(err, "cannot store claim")
	}
	if err := m.active.Delete(db, token.Key(claim.TokenID)); err != nil {
		return errors.Wrap(err, "cannot drop claim index")
	}
	return nil
}

// Claim returns the pending claim of the token or nil if there is none.
func (m *Machine) Claim(db plasma.ReadOnlyKVStore, tokenID uint64) (*ExitClaim, error) {
	var ref activeClaim
	switch err := m.active.One(db, token.Key(tokenID), &ref); {
	case errors.ErrNotFound.Is(err):
		return nil, nil
	case err != nil:
		return nil, errors.Wrap(err, "cannot read claim index")
	}
	return m.ClaimByID(db, ref.ClaimID)
}

// ClaimByID returns the claim with given id in any state.
func (m *Machine) ClaimByID(db plasma.ReadOnlyKVStore, id uint64) (*ExitClaim, error) {
	var claim ExitClaim
	if err := m.claims.One(db, claimKey(id), &claim); err != nil {
		return nil, errors.Wrapf(err, "claim %d", id)
	}
	return &claim, nil
}

func (m *Machine) pendingClaim(db plasma.ReadOnlyKVStore, tokenID uint64) (*ExitClaim, error) {
	claim, err := m.Claim(db, tokenID)
	if err != nil {
		return nil, err
	}
	if claim == nil {
		return nil, errors.Wrapf(ErrNoSuchClaim, "token %d", tokenID)
	}
	return claim, nil
}

// Challenges returns the audit log of successful challenges against given
// token, oldest first.
func (m *Machine) Challenges(db plasma.ReadOnlyKVStore, tokenID uint64) ([]*ChallengeRecord, error) {
	var res []*ChallengeRecord
	err := m.challenges.Iterate(db, nil, func(key, raw []byte) error {
		var r ChallengeRecord
		if err := r.Unmarshal(raw); err != nil {
			return err
		}
		if r.TokenID == tokenID {
			res = append(res, &r)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "cannot read challenges")
	}
	return res, nil
}

func blockHeight(ctx plasma.Context) (int64, error) {
	height, ok := plasma.GetHeight(ctx)
	if !ok {
		return 0, errors.Wrap(errors.ErrHuman, "block height not in context")
	}
	return height, nil
}
