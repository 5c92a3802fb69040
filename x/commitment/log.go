package commitment

import (
	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/errors"
	"github.com/zatoichi-labs/plasma/orm"
	"github.com/zatoichi-labs/plasma/x/proof"
)

// Log is the append only list of commitments. It has no delete operation.
type Log struct {
	bucket orm.ModelBucket
}

var _ proof.RootReader = (*Log)(nil)

// NewLog returns the commitment log.
func NewLog() *Log {
	return &Log{bucket: orm.NewModelBucket(BucketName)}
}

// Submit records the root of the block at given height. The first
// commitment may have any positive height, every following one must be
// exactly one above the last.
func (l *Log) Submit(db plasma.KVStore, height int64, root []byte, submitter plasma.Address) (*Commitment, error) {
	c := &Commitment{Height: height, Root: root, Submitter: submitter}
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid commitment")
	}

	switch ok, err := l.bucket.Has(db, heightKey(height)); {
	case err != nil:
		return nil, errors.Wrap(err, "cannot read commitment")
	case ok:
		return nil, errors.Wrapf(errors.ErrDuplicate, "commitment at height %d", height)
	}

	last, err := l.Last(db)
	if err != nil {
		return nil, err
	}
	if last != 0 && height != last+1 {
		return nil, errors.Wrapf(ErrOutOfOrder, "height %d after %d", height, last)
	}

	if err := l.bucket.Put(db, heightKey(height), c); err != nil {
		return nil, errors.Wrap(err, "cannot store commitment")
	}
	return c, nil
}

// Get returns the commitment at given height or ErrNotFound.
func (l *Log) Get(db plasma.ReadOnlyKVStore, height int64) (*Commitment, error) {
	var c Commitment
	if err := l.bucket.One(db, heightKey(height), &c); err != nil {
		return nil, errors.Wrapf(err, "height %d", height)
	}
	return &c, nil
}

// Root returns the root committed at given height or ErrNotFound.
func (l *Log) Root(db plasma.ReadOnlyKVStore, height int64) ([]byte, error) {
	c, err := l.Get(db, height)
	if err != nil {
		return nil, err
	}
	return c.Root, nil
}

// Last returns the greatest recorded height or zero if the log is empty.
func (l *Log) Last(db plasma.ReadOnlyKVStore) (int64, error) {
	key, _, err := l.bucket.Last(db, nil)
	switch {
	case errors.ErrNotFound.Is(err):
		return 0, nil
	case err != nil:
		return 0, errors.Wrap(err, "cannot read last commitment")
	}
	return orm.DecodeSequence(key)
}

// Register exposes the log as the "/commitments" query.
func (l *Log) Register(qr plasma.QueryRouter) {
	l.bucket.Register("commitments", qr)
}
