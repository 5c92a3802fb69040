package store

import "github.com/zatoichi-labs/plasma"

// Move references for all storage types into this package
// for shorter names everywhere

type (
	// ReadOnlyKVStore is an alias for plasma.ReadOnlyKVStore
	ReadOnlyKVStore = plasma.ReadOnlyKVStore
	// SetDeleter is an alias for plasma.SetDeleter
	SetDeleter = plasma.SetDeleter
	// KVStore is an alias for plasma.KVStore
	KVStore = plasma.KVStore
	// Batch is an alias for plasma.Batch
	Batch = plasma.Batch
	// Iterator is an alias for plasma.Iterator
	Iterator = plasma.Iterator
	// CacheableKVStore is an alias for plasma.CacheableKVStore
	CacheableKVStore = plasma.CacheableKVStore
	// KVCacheWrap is an alias for plasma.KVCacheWrap
	KVCacheWrap = plasma.KVCacheWrap
	// CommitKVStore is an alias for plasma.CommitKVStore
	CommitKVStore = plasma.CommitKVStore
	// CommitID is an alias for plasma.CommitID
	CommitID = plasma.CommitID
	// Model is an alias for plasma.Model
	Model = plasma.Model
)

// Pair constructs a model from a key-value pair
var Pair = plasma.Pair
