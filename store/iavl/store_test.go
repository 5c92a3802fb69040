package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/zatoichi-labs/plasma/plasmatest/assert"
	"github.com/zatoichi-labs/plasma/store"
)

func makeCommitStore(t testing.TB) (CommitStore, func()) {
	t.Helper()
	dir, err := ioutil.TempDir("", "iavl-store-")
	assert.Nil(t, err)
	commit, err := NewCommitStore(dir, "base")
	assert.Nil(t, err)
	return commit, func() { os.RemoveAll(dir) }
}

func TestCacheWrappedCommitStore(t *testing.T) {
	store.NewSuite(func() (store.CacheableKVStore, func()) {
		commit, cleanup := makeCommitStore(t)
		return commit.CacheWrap(), cleanup
	}).Run(t)
}

func TestCommitAndReload(t *testing.T) {
	commit, cleanup := makeCommitStore(t)
	defer cleanup()

	id, err := commit.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, int64(0), id.Version)

	k, v := []byte("commitment"), []byte("root")
	cache := commit.CacheWrap()
	assert.Nil(t, cache.Set(k, v))
	assert.Nil(t, cache.Write())

	// not visible before the commit
	got, err := commit.Get(k)
	assert.Nil(t, err)
	assert.Equal(t, []byte(nil), got)

	first, err := commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(1), first.Version)
	if len(first.Hash) == 0 {
		t.Fatal("empty app hash")
	}
	got, err = commit.Get(k)
	assert.Nil(t, err)
	assert.Equal(t, v, got)

	// a discarded cache does not change the hash
	cache = commit.CacheWrap()
	assert.Nil(t, cache.Set([]byte("other"), []byte("value")))
	cache.Discard()
	second, err := commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(2), second.Version)
	assert.Equal(t, first.Hash, second.Hash)

	latest, err := commit.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, second, latest)
	assert.Nil(t, commit.LoadLatestVersion())
}

func TestMemCommitStoreDeterministicHash(t *testing.T) {
	write := func() []byte {
		s := NewMemCommitStore()
		c := s.CacheWrap()
		// insertion order must not matter
		for _, k := range []string{"c", "a", "b"} {
			assert.Nil(t, c.Set([]byte(k), []byte(k+"-value")))
		}
		assert.Nil(t, c.Write())
		id, err := s.Commit()
		assert.Nil(t, err)
		return id.Hash
	}
	assert.Equal(t, write(), write())
}
