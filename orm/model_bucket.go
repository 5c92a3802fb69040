package orm

import (
	"regexp"

	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,12}$`).MatchString

// ModelBucket stores models of a single type under a common prefix. Lookup
// is done by the primary key.
type ModelBucket struct {
	name   string
	prefix []byte
}

// NewModelBucket returns a bucket storing models with given name as the key
// prefix. Name must be unique within the application.
func NewModelBucket(name string) ModelBucket {
	if !isBucketName(name) {
		panic("invalid bucket name: " + name)
	}
	return ModelBucket{
		name:   name,
		prefix: []byte(name + ":"),
	}
}

// Name returns the bucket name.
func (b ModelBucket) Name() string {
	return b.name
}

// DBKey is the full key we store in the db, including prefix
// We copy into a new array rather than use append, as we don't
// want consecutive calls to overwrite the same byte array.
func (b ModelBucket) DBKey(key []byte) []byte {
	res := make([]byte, len(b.prefix)+len(key))
	copy(res, b.prefix)
	copy(res[len(b.prefix):], key)
	return res
}

// One query the database for a single model instance. Result is loaded into
// given destination model.
// This method returns ErrNotFound if the entity does not exist in the
// database.
func (b ModelBucket) One(db plasma.ReadOnlyKVStore, key []byte, dest Model) error {
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot get from the database")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "cannot unmarshal into %T", dest)
	}
	return nil
}

// Has returns true if an entity with given key exists.
func (b ModelBucket) Has(db plasma.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.DBKey(key))
}

// Put saves given model in the database. Model is validated before saving.
func (b ModelBucket) Put(db plasma.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrap(err, "cannot marshal")
	}
	if err := db.Set(b.DBKey(key), raw); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

// Delete removes an entity with given primary key from the database.
// It returns ErrNotFound if an entity with given key does not exist.
func (b ModelBucket) Delete(db plasma.KVStore, key []byte) error {
	k := b.DBKey(key)
	switch ok, err := db.Has(k); {
	case err != nil:
		return err
	case !ok:
		return errors.Wrapf(errors.ErrNotFound, "key %X", key)
	}
	return db.Delete(k)
}

// Iterate calls fn for every stored entity whose key starts with given
// prefix, in key order. The key passed to fn has the bucket prefix removed.
// Returning an error from fn stops the iteration and the error is returned.
func (b ModelBucket) Iterate(db plasma.ReadOnlyKVStore, prefix []byte, fn func(key, raw []byte) error) error {
	itr, err := db.Iterator(prefixRange(b.DBKey(prefix)))
	if err != nil {
		return err
	}
	defer itr.Release()
	for {
		key, value, err := itr.Next()
		if errors.ErrIteratorDone.Is(err) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(key[len(b.prefix):], value); err != nil {
			return err
		}
	}
}

// First returns the entity with the smallest key starting with given
// prefix. It is the counterpart of Last.
func (b ModelBucket) First(db plasma.ReadOnlyKVStore, prefix []byte) ([]byte, []byte, error) {
	itr, err := db.Iterator(prefixRange(b.DBKey(prefix)))
	if err != nil {
		return nil, nil, err
	}
	defer itr.Release()
	key, value, err := itr.Next()
	if errors.ErrIteratorDone.Is(err) {
		return nil, nil, errors.Wrapf(errors.ErrNotFound, "bucket %s is empty", b.name)
	}
	if err != nil {
		return nil, nil, err
	}
	return key[len(b.prefix):], value, nil
}

// Last returns the entity with the greatest key starting with given prefix.
// The key has the bucket prefix removed. ErrNotFound is returned when no
// such entity exists.
func (b ModelBucket) Last(db plasma.ReadOnlyKVStore, prefix []byte) ([]byte, []byte, error) {
	itr, err := db.ReverseIterator(prefixRange(b.DBKey(prefix)))
	if err != nil {
		return nil, nil, err
	}
	defer itr.Release()
	key, value, err := itr.Next()
	if errors.ErrIteratorDone.Is(err) {
		return nil, nil, errors.Wrapf(errors.ErrNotFound, "bucket %s is empty", b.name)
	}
	if err != nil {
		return nil, nil, err
	}
	return key[len(b.prefix):], value, nil
}

// Register registers this bucket as a query handler under /<name> path.
func (b ModelBucket) Register(name string, r plasma.QueryRouter) {
	if name == "" {
		name = b.name
	}
	r.Register("/"+name, b)
}

// Query handles queries from the QueryRouter
func (b ModelBucket) Query(db plasma.ReadOnlyKVStore, mod string, data []byte) ([]plasma.Model, error) {
	switch mod {
	case plasma.KeyQueryMod:
		key := b.DBKey(data)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		// return nothing on miss
		if value == nil {
			return nil, nil
		}
		return []plasma.Model{{Key: key, Value: value}}, nil
	case plasma.PrefixQueryMod:
		return queryPrefix(db, b.DBKey(data))
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
}
