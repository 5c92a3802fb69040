package orm

import (
	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/errors"
)

// ConsumeIterator will read all remaining data into an
// array and release the iterator
func ConsumeIterator(itr plasma.Iterator) ([]plasma.Model, error) {
	defer itr.Release()

	var res []plasma.Model
	for {
		key, value, err := itr.Next()
		if errors.ErrIteratorDone.Is(err) {
			return res, nil
		}
		if err != nil {
			return nil, err
		}
		res = append(res, plasma.Model{Key: key, Value: value})
	}
}

// PrefixRange returns the [start, end) domain holding all keys with given
// prefix. A nil end means the domain is open.
func PrefixRange(prefix []byte) ([]byte, []byte) {
	return prefixRange(prefix)
}

// prefixRange turns a prefix into (start, end) to create
// and iterator
func prefixRange(prefix []byte) ([]byte, []byte) {
	// special case: no prefix is whole range
	if len(prefix) == 0 {
		return nil, nil
	}

	// copy the prefix and update last byte
	end := make([]byte, len(prefix))
	copy(end, prefix)
	l := len(end) - 1
	end[l]++

	// wait, what if that overflowed?....
	for end[l] == 0 && l > 0 {
		l--
		end[l]++
	}

	// okay, funny guy, you gave us FFF, no end to this range...
	if l == 0 && end[0] == 0 {
		end = nil
	}
	return prefix, end
}

func queryPrefix(db plasma.ReadOnlyKVStore, prefix []byte) ([]plasma.Model, error) {
	itr, err := db.Iterator(prefixRange(prefix))
	if err != nil {
		return nil, err
	}
	return ConsumeIterator(itr)
}

// RegisterQuery exposes the raw key value store under "/". Every key
// can be loaded, or listed by prefix.
func RegisterQuery(qr plasma.QueryRouter) {
	qr.Register("/", rawQuery{})
}

type rawQuery struct{}

// Query loads a single key or all keys starting with data.
func (rawQuery) Query(db plasma.ReadOnlyKVStore, mod string, data []byte) ([]plasma.Model, error) {
	switch mod {
	case plasma.KeyQueryMod:
		value, err := db.Get(data)
		if err != nil {
			return nil, err
		}
		if value == nil {
			return nil, nil
		}
		return []plasma.Model{plasma.Pair(data, value)}, nil
	case plasma.PrefixQueryMod:
		return queryPrefix(db, data)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod: %s", mod)
	}
}
