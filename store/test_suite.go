package store

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"sort"
	"testing"

	"github.com/zatoichi-labs/plasma/errors"
	"github.com/zatoichi-labs/plasma/plasmatest/assert"
)

// StoreFactory creates a fresh store for every scenario. The returned
// function releases any resources held by the store.
type StoreFactory func() (base CacheableKVStore, cleanup func())

// Suite runs the same set of scenarios against any CacheableKVStore
// implementation, so the in-memory btree and the iavl backed stores are
// held to identical behaviour.
type Suite struct {
	factory StoreFactory
}

// NewSuite returns a suite running against stores built by factory.
func NewSuite(factory StoreFactory) *Suite {
	return &Suite{factory: factory}
}

// Run executes every scenario as a subtest.
func (s *Suite) Run(t *testing.T) {
	t.Run("get and set", s.GetSet)
	t.Run("nested cache", s.NestedCache)
	t.Run("cache conflicts", s.CacheConflicts)
	t.Run("ordered keys", s.OrderedKeys)
	t.Run("random iteration", s.RandomIteration)
}

// GetSet checks that writes are visible only in the layer they were made
// in, until the layer is written down.
func (s *Suite) GetSet(t *testing.T) {
	base, cleanup := s.factory()
	defer cleanup()

	deposit, owner := []byte("deposit:1"), []byte("alice")
	assertValue(t, base, deposit, nil)
	assert.Nil(t, base.Set(deposit, owner))
	assertValue(t, base, deposit, owner)

	cache := base.CacheWrap()
	assertValue(t, cache, deposit, owner)

	exit, claim := []byte("exit:1"), []byte("pending")
	assert.Nil(t, cache.Set(exit, claim))
	assertValue(t, cache, exit, claim)
	assertValue(t, base, exit, nil)

	assert.Nil(t, cache.Write())
	assertValue(t, base, exit, claim)

	dropped := base.CacheWrap()
	assert.Nil(t, dropped.Delete(deposit))
	assert.Nil(t, dropped.Set([]byte("exit:2"), claim))
	dropped.Discard()
	assertValue(t, base, deposit, owner)
	assertValue(t, base, []byte("exit:2"), nil)

	kept := base.CacheWrap()
	assert.Nil(t, kept.Delete(deposit))
	assert.Nil(t, kept.Write())
	assertValue(t, base, deposit, nil)
	assertValue(t, base, exit, claim)
}

// NestedCache mirrors how a block is processed. Every transaction runs in
// its own layer on top of the block layer, and a failed one is discarded
// without affecting the others.
func (s *Suite) NestedCache(t *testing.T) {
	base, cleanup := s.factory()
	defer cleanup()

	block := base.CacheWrap()

	ok := block.CacheWrap()
	assert.Nil(t, ok.Set([]byte("claim:1"), []byte("pending")))
	assert.Nil(t, ok.Write())

	failed := block.CacheWrap()
	assert.Nil(t, failed.Set([]byte("claim:2"), []byte("pending")))
	assert.Nil(t, failed.Delete([]byte("claim:1")))
	assertValue(t, failed, []byte("claim:1"), nil)
	failed.Discard()

	assertValue(t, block, []byte("claim:1"), []byte("pending"))
	assertValue(t, block, []byte("claim:2"), nil)
	assertValue(t, base, []byte("claim:1"), nil)

	assert.Nil(t, block.Write())
	assertValue(t, base, []byte("claim:1"), []byte("pending"))
	assertValue(t, base, []byte("claim:2"), nil)
}

// CacheConflicts checks overwriting and deleting values that exist in the
// parent layer.
func (s *Suite) CacheConflicts(t *testing.T) {
	ks := randKeys(4, 16)
	vs := randKeys(4, 40)

	cases := map[string]struct {
		parent []Op
		child  []Op
		// Key is queried, Value is expected. A nil value must not exist.
		parentWants []Model
		childWants  []Model
	}{
		"overwrite one, delete another, add a third": {
			parent:      []Op{SetOp(ks[1], vs[1]), SetOp(ks[2], vs[2])},
			child:       []Op{SetOp(ks[1], vs[0]), SetOp(ks[3], vs[3]), DelOp(ks[2])},
			parentWants: []Model{Pair(ks[1], vs[1]), Pair(ks[2], vs[2]), Pair(ks[3], nil)},
			childWants:  []Model{Pair(ks[1], vs[0]), Pair(ks[2], nil), Pair(ks[3], vs[3])},
		},
		"delete then set again": {
			parent:      []Op{SetOp(ks[0], vs[0])},
			child:       []Op{DelOp(ks[0]), SetOp(ks[0], vs[1])},
			parentWants: []Model{Pair(ks[0], vs[0])},
			childWants:  []Model{Pair(ks[0], vs[1])},
		},
		"delete missing key": {
			child:       []Op{DelOp(ks[2])},
			parentWants: []Model{Pair(ks[2], nil)},
			childWants:  []Model{Pair(ks[2], nil)},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			parent, cleanup := s.factory()
			defer cleanup()

			applyOps(t, parent, tc.parent)
			child := parent.CacheWrap()
			applyOps(t, child, tc.child)

			for _, w := range tc.parentWants {
				assertValue(t, parent, w.Key, w.Value)
			}
			for _, w := range tc.childWants {
				assertValue(t, child, w.Key, w.Value)
			}

			assert.Nil(t, child.Write())
			for _, w := range tc.childWants {
				assertValue(t, parent, w.Key, w.Value)
			}
		})
	}
}

// OrderedKeys checks that big endian encoded numbers iterate in numeric
// order. Indexes keyed by height or token id depend on it.
func (s *Suite) OrderedKeys(t *testing.T) {
	base, cleanup := s.factory()
	defer cleanup()

	heights := []uint64{300, 2, 70000, 1, 255, 256}
	for i, h := range heights[:3] {
		assert.Nil(t, base.Set(heightKey(h), []byte{byte(i)}))
	}
	child := base.CacheWrap()
	for i, h := range heights[3:] {
		assert.Nil(t, child.Set(heightKey(h), []byte{byte(i + 3)}))
	}
	assert.Nil(t, child.Delete(heightKey(2)))

	want := []uint64{1, 255, 256, 300, 70000}
	assert.Equal(t, want, iterHeights(t, child, nil, nil, false))
	assert.Equal(t, []uint64{70000, 300, 256, 255, 1}, iterHeights(t, child, nil, nil, true))
	assert.Equal(t, []uint64{255, 256}, iterHeights(t, child, heightKey(200), heightKey(300), false))
	assert.Equal(t, []uint64{300, 70000}, iterHeights(t, child, heightKey(257), nil, false))
	assert.Equal(t, []uint64{1}, iterHeights(t, child, nil, heightKey(255), true))
}

// RandomIteration compares range iteration over a two layer store with
// the expected sorted result, in both directions.
func (s *Suite) RandomIteration(t *testing.T) {
	const size = 40

	parentSet := randModels(size, 8, 20)
	childSet := randModels(size, 8, 20)
	childDel := parentSet[:size/4]
	all := sortModels(append(append([]Model{}, parentSet[size/4:]...), childSet...))

	base, cleanup := s.factory()
	defer cleanup()
	applyOps(t, base, makeSetOps(parentSet...))
	child := base.CacheWrap()
	applyOps(t, child, makeSetOps(childSet...))
	applyOps(t, child, makeDelOps(childDel...))

	n := len(all)
	queries := []struct {
		start, end []byte
		want       []Model
	}{
		{nil, nil, all},
		{all[10].Key, nil, all[10:]},
		{nil, all[n-8].Key, all[:n-8]},
		{all[17].Key, all[28].Key, all[17:28]},
	}
	for _, q := range queries {
		assertIter(t, child, q.start, q.end, false, q.want)
		assertIter(t, child, q.start, q.end, true, reverse(q.want))
	}
}

func applyOps(t testing.TB, kv KVStore, ops []Op) {
	t.Helper()
	for _, op := range ops {
		assert.Nil(t, op.Apply(kv))
	}
}

// assertValue checks both Get and Has for the key. A nil value means the
// key must not exist.
func assertValue(t testing.TB, kv ReadOnlyKVStore, key, want []byte) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, want, got)
	exists, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, want != nil, exists)
}

func assertIter(t testing.TB, kv ReadOnlyKVStore, start, end []byte, desc bool, want []Model) {
	t.Helper()
	got := collect(t, kv, start, end, desc)
	if len(got) != len(want) {
		t.Fatalf("want %d models, got %d", len(want), len(got))
	}
	for i := range want {
		if !bytes.Equal(want[i].Key, got[i].Key) {
			t.Fatalf("model %d: want key %X, got %X", i, want[i].Key, got[i].Key)
		}
		assert.Equal(t, want[i].Value, got[i].Value)
	}
}

func collect(t testing.TB, kv ReadOnlyKVStore, start, end []byte, desc bool) []Model {
	t.Helper()
	var (
		it  Iterator
		err error
	)
	if desc {
		it, err = kv.ReverseIterator(start, end)
	} else {
		it, err = kv.Iterator(start, end)
	}
	assert.Nil(t, err)
	defer it.Release()

	var res []Model
	for {
		key, value, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return res
		}
		assert.Nil(t, err)
		res = append(res, Pair(key, value))
	}
}

func heightKey(h uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, h)
	return key
}

func iterHeights(t testing.TB, kv ReadOnlyKVStore, start, end []byte, desc bool) []uint64 {
	t.Helper()
	var res []uint64
	for _, m := range collect(t, kv, start, end, desc) {
		res = append(res, binary.BigEndian.Uint64(m.Key))
	}
	return res
}

func randBytes(length int) []byte {
	res := make([]byte, length)
	_, _ = rand.Read(res)
	return res
}

func randKeys(count, size int) [][]byte {
	res := make([][]byte, count)
	for i := range res {
		res[i] = randBytes(size)
	}
	return res
}

func randModels(count, keySize, valueSize int) []Model {
	models := make([]Model, count)
	for i := range models {
		models[i] = Pair(randBytes(keySize), randBytes(valueSize))
	}
	return models
}

func reverse(models []Model) []Model {
	res := make([]Model, len(models))
	for i, m := range models {
		res[len(models)-1-i] = m
	}
	return res
}

func sortModels(models []Model) []Model {
	res := make([]Model, len(models))
	copy(res, models)
	sort.Slice(res, func(i, j int) bool {
		return bytes.Compare(res[i].Key, res[j].Key) < 0
	})
	return res
}

func makeSetOps(ms ...Model) []Op {
	res := make([]Op, len(ms))
	for i, m := range ms {
		res[i] = SetOp(m.Key, m.Value)
	}
	return res
}

func makeDelOps(ms ...Model) []Op {
	res := make([]Op, len(ms))
	for i, m := range ms {
		res[i] = DelOp(m.Key)
	}
	return res
}
