package store

import (
	"bytes"

	"github.com/zatoichi-labs/plasma/errors"
)

////////////////////////////////////////////////
// Slice -> Iterator

// SliceIterator wraps an Iterator over a slice of models
type SliceIterator struct {
	data []Model
	idx  int
}

var _ Iterator = (*SliceIterator)(nil)

// NewSliceIterator creates a new Iterator over this slice
func NewSliceIterator(data []Model) *SliceIterator {
	return &SliceIterator{
		data: data,
	}
}

// Next returns the current model and moves the cursor forward.
func (s *SliceIterator) Next() (key, value []byte, err error) {
	if s.idx >= len(s.data) {
		return nil, nil, errors.ErrIteratorDone
	}
	m := s.data[s.idx]
	s.idx++
	return m.Key, m.Value, nil
}

// Release releases the Iterator.
func (s *SliceIterator) Release() {
	s.data = nil
}

///////////////////////////////////////////////////////
// Cache items combined with the parent iterator

// cacheIterator merges the items staged in a cache wrap with the content of
// the parent store. Staged items take precedence over the parent and
// deleted items hide the parent value with the same key.
type cacheIterator struct {
	parent  Iterator
	pKey    []byte
	pValue  []byte
	pValid  bool
	items   []keyer
	idx     int
	reverse bool
}

var _ Iterator = (*cacheIterator)(nil)

// newCacheIterator expects items to be ordered in the same direction as the
// parent iterator.
func newCacheIterator(parent Iterator, items []keyer, reverse bool) (*cacheIterator, error) {
	it := &cacheIterator{
		parent:  parent,
		items:   items,
		reverse: reverse,
	}
	if err := it.advanceParent(); err != nil {
		parent.Release()
		return nil, err
	}
	return it, nil
}

func (i *cacheIterator) advanceParent() error {
	k, v, err := i.parent.Next()
	if errors.ErrIteratorDone.Is(err) {
		i.pKey, i.pValue, i.pValid = nil, nil, false
		return nil
	}
	if err != nil {
		return err
	}
	i.pKey, i.pValue, i.pValid = k, v, true
	return nil
}

// Next returns the next visible key in iteration order.
func (i *cacheIterator) Next() (key, value []byte, err error) {
	for {
		hasOwn := i.idx < len(i.items)
		if !hasOwn && !i.pValid {
			return nil, nil, errors.ErrIteratorDone
		}

		// cmp < 0 means the cached item comes first.
		var cmp int
		switch {
		case !hasOwn:
			cmp = 1
		case !i.pValid:
			cmp = -1
		default:
			cmp = bytes.Compare(i.items[i.idx].Key(), i.pKey)
			if i.reverse {
				cmp = -cmp
			}
		}

		if cmp > 0 {
			k, v := i.pKey, i.pValue
			if err := i.advanceParent(); err != nil {
				return nil, nil, err
			}
			return k, v, nil
		}

		item := i.items[i.idx]
		i.idx++
		if cmp == 0 {
			// Cached value shadows the parent one.
			if err := i.advanceParent(); err != nil {
				return nil, nil, err
			}
		}
		if set, ok := item.(setItem); ok {
			return set.key, set.value, nil
		}
		// Deleted items are skipped.
	}
}

// Release releases the Iterator.
func (i *cacheIterator) Release() {
	i.parent.Release()
	i.items = nil
}
