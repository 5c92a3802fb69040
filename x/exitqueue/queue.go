package exitqueue

import (
	"sort"

	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/errors"
	"github.com/zatoichi-labs/plasma/orm"
)

// Queue is the ordered set of pending exits. At most one entry per token is
// allowed.
type Queue struct {
	byToken    orm.ModelBucket
	byPriority orm.ModelBucket
	byDeadline orm.ModelBucket
}

// NewQueue returns the exit queue.
func NewQueue() *Queue {
	return &Queue{
		byToken:    orm.NewModelBucket("exitq"),
		byPriority: orm.NewModelBucket("exitq_prio"),
		byDeadline: orm.NewModelBucket("exitq_due"),
	}
}

// Insert adds an entry. It fails with ErrDuplicate if the token is already
// queued.
func (q *Queue) Insert(db plasma.KVStore, e *Entry) error {
	if err := e.Validate(); err != nil {
		return errors.Wrap(err, "invalid entry")
	}
	switch ok, err := q.byToken.Has(db, tokenKey(e.TokenID)); {
	case err != nil:
		return errors.Wrap(err, "cannot read queue")
	case ok:
		return errors.Wrapf(errors.ErrDuplicate, "token %d already queued", e.TokenID)
	}

	if err := q.byToken.Put(db, tokenKey(e.TokenID), e); err != nil {
		return err
	}
	if err := q.byPriority.Put(db, e.PriorityKey(), e); err != nil {
		return err
	}
	return q.byDeadline.Put(db, e.deadlineKey(), e)
}

// Get returns the entry of given token or ErrNotFound.
func (q *Queue) Get(db plasma.ReadOnlyKVStore, tokenID uint64) (*Entry, error) {
	var e Entry
	if err := q.byToken.One(db, tokenKey(tokenID), &e); err != nil {
		return nil, errors.Wrapf(err, "token %d", tokenID)
	}
	return &e, nil
}

// PeekMin returns the entry with the lowest priority key. It fails with
// ErrEmpty when the queue is empty.
func (q *Queue) PeekMin(db plasma.ReadOnlyKVStore) (*Entry, error) {
	_, raw, err := q.byPriority.First(db, nil)
	switch {
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrap(errors.ErrEmpty, "exit queue")
	case err != nil:
		return nil, errors.Wrap(err, "cannot read queue")
	}
	var e Entry
	if err := e.Unmarshal(raw); err != nil {
		return nil, err
	}
	return &e, nil
}

// PopMin removes and returns the entry with the lowest priority key. It
// fails with ErrEmpty when the queue is empty.
func (q *Queue) PopMin(db plasma.KVStore) (*Entry, error) {
	e, err := q.PeekMin(db)
	if err != nil {
		return nil, err
	}
	if err := q.delete(db, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Remove deletes the entry of given token from any position of the queue.
// It fails with ErrNotFound if the token is not queued.
func (q *Queue) Remove(db plasma.KVStore, tokenID uint64) (*Entry, error) {
	e, err := q.Get(db, tokenID)
	if err != nil {
		return nil, err
	}
	if err := q.delete(db, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (q *Queue) delete(db plasma.KVStore, e *Entry) error {
	if err := q.byToken.Delete(db, tokenKey(e.TokenID)); err != nil {
		return errors.Wrap(err, "token index")
	}
	if err := q.byPriority.Delete(db, e.PriorityKey()); err != nil {
		return errors.Wrap(err, "priority index")
	}
	if err := q.byDeadline.Delete(db, e.deadlineKey()); err != nil {
		return errors.Wrap(err, "deadline index")
	}
	return nil
}

// Ready returns all entries whose challenge period ended at or before given
// height, in priority order. Only the deadline index is scanned, so entries
// that are not yet ready are never read past the first one.
func (q *Queue) Ready(db plasma.ReadOnlyKVStore, height int64) ([]*Entry, error) {
	var res []*Entry
	err := q.byDeadline.Iterate(db, nil, func(key, raw []byte) error {
		var e Entry
		if err := e.Unmarshal(raw); err != nil {
			return err
		}
		if e.ChallengePeriodEnd > height {
			return errors.ErrIteratorDone
		}
		res = append(res, &e)
		return nil
	})
	if err != nil && !errors.ErrIteratorDone.Is(err) {
		return nil, errors.Wrap(err, "cannot read queue")
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Less(res[j]) })
	return res, nil
}

// List returns all entries in priority order.
func (q *Queue) List(db plasma.ReadOnlyKVStore) ([]*Entry, error) {
	var res []*Entry
	err := q.byPriority.Iterate(db, nil, func(key, raw []byte) error {
		var e Entry
		if err := e.Unmarshal(raw); err != nil {
			return err
		}
		res = append(res, &e)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "cannot read queue")
	}
	return res, nil
}

// Register exposes the priority index as the "/exitqueue" query.
func (q *Queue) Register(qr plasma.QueryRouter) {
	q.byPriority.Register("exitqueue", qr)
}
