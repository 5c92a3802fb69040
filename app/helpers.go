package app

import (
	"bytes"

	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/errors"
	"github.com/zatoichi-labs/plasma/store"
)

// Querier is the query half of an abci application. Both an in-process
// application and a remote node client implement it.
type Querier interface {
	Query(abci.RequestQuery) abci.ResponseQuery
}

// ABCIStore exposes the abci.Query interface as a ReadOnlyKVStore, so
// buckets can read the state of a running application.
type ABCIStore struct {
	app Querier
}

var _ plasma.ReadOnlyKVStore = (*ABCIStore)(nil)

// NewABCIStore returns a store reading through given query interface.
func NewABCIStore(app Querier) *ABCIStore {
	return &ABCIStore{app: app}
}

// Get will query for exactly one value over the abci store.
// This can be wrapped with a bucket to reuse key/index/parse logic
func (a *ABCIStore) Get(key []byte) ([]byte, error) {
	query := a.app.Query(abci.RequestQuery{
		Path: "/",
		Data: key,
	})
	if query.Code != 0 {
		return nil, errors.ABCIError(query.Code, query.Log)
	}
	var value ResultSet
	if err := value.Unmarshal(query.Value); err != nil {
		return nil, errors.Wrap(err, "unmarshal result set")
	}
	switch len(value.Results) {
	case 0:
		return nil, nil
	case 1:
		return value.Results[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrState, "%d results for a single key", len(value.Results))
	}
}

// Has returns true if the given key in in the abci app store
func (a *ABCIStore) Has(key []byte) (bool, error) {
	v, err := a.Get(key)
	return len(v) > 0, err
}

// Iterator loads the whole store with a prefix query and iterates over the
// requested range in memory.
func (a *ABCIStore) Iterator(start, end []byte) (plasma.Iterator, error) {
	models, err := a.all()
	if err != nil {
		return nil, err
	}
	return NewSliceIterator(inRange(models, start, end)), nil
}

// ReverseIterator is like Iterator but in descending key order.
func (a *ABCIStore) ReverseIterator(start, end []byte) (plasma.Iterator, error) {
	models, err := a.all()
	if err != nil {
		return nil, err
	}
	models = inRange(models, start, end)
	for i, j := 0, len(models)-1; i < j; i, j = i+1, j-1 {
		models[i], models[j] = models[j], models[i]
	}
	return NewSliceIterator(models), nil
}

func (a *ABCIStore) all() ([]plasma.Model, error) {
	query := a.app.Query(abci.RequestQuery{
		Path: "/?prefix",
		Data: nil,
	})
	if query.Code != 0 {
		return nil, errors.ABCIError(query.Code, query.Log)
	}
	models, err := toModels(query.Key, query.Value)
	if err != nil {
		return nil, errors.Wrap(err, "cannot convert to model")
	}
	return models, nil
}

func inRange(models []plasma.Model, start, end []byte) []plasma.Model {
	res := models[:0]
	for _, m := range models {
		if start != nil && bytes.Compare(m.Key, start) < 0 {
			continue
		}
		if end != nil && bytes.Compare(m.Key, end) >= 0 {
			continue
		}
		res = append(res, m)
	}
	return res
}

func toModels(keys, values []byte) ([]plasma.Model, error) {
	var k, v ResultSet
	if err := k.Unmarshal(keys); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal keys")
	}
	if err := v.Unmarshal(values); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal values")
	}
	return JoinResults(&k, &v)
}

// sliceIterator wraps an Iterator over a slice of models
type sliceIterator struct {
	data []plasma.Model
	idx  int
}

var _ store.Iterator = (*sliceIterator)(nil)

// NewSliceIterator creates a new Iterator over this slice
func NewSliceIterator(data []plasma.Model) plasma.Iterator {
	return &sliceIterator{
		data: data,
	}
}

// Next returns the next key/value pair or ErrIteratorDone.
func (s *sliceIterator) Next() (key, value []byte, err error) {
	if s.idx >= len(s.data) {
		return nil, nil, errors.Wrap(errors.ErrIteratorDone, "slice iterator")
	}
	m := s.data[s.idx]
	s.idx++
	return m.Key, m.Value, nil
}

// Release releases the Iterator.
func (s *sliceIterator) Release() {
	s.data = nil
}
