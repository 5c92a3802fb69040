package orm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/store"
)

func TestPrefixRange(t *testing.T) {
	cases := map[string]struct {
		prefix []byte
		end    []byte
	}{
		"normal":                 {[]byte{1, 3, 4}, []byte{1, 3, 5}},
		"normal short":           {[]byte{79}, []byte{80}},
		"empty cases":            {nil, nil},
		"roll-over example 1":    {[]byte{17, 28, 255}, []byte{17, 29, 0}},
		"roll-over example 2":    {[]byte{15, 42, 255, 255}, []byte{15, 43, 0, 0}},
		"pathological roll-over": {[]byte{255, 255, 255, 255}, nil},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			start, end := prefixRange(tc.prefix)
			assert.Equal(t, tc.prefix, start)
			assert.Equal(t, tc.end, end)
		})
	}
}

func TestQueryPrefix(t *testing.T) {
	m := plasma.Model{Key: []byte{3, 17, 98}, Value: []byte{1}}
	m2 := plasma.Model{Key: []byte{3, 17, 42}, Value: []byte{2}}
	m3 := plasma.Model{Key: []byte{25, 16}, Value: []byte{3}}
	m4 := plasma.Model{Key: []byte{3, 93, 11, 134}, Value: []byte{4}}

	cases := map[string]struct {
		models   []plasma.Model
		prefix   []byte
		expected []plasma.Model
	}{
		"no matches without models": {nil, []byte{5}, nil},
		"find expected models with first 2 bytes matching": {
			[]plasma.Model{m, m2, m3, m4},
			[]byte{3, 17},
			[]plasma.Model{m2, m},
		},
		"find one by first byte": {
			[]plasma.Model{m, m2, m3, m4},
			[]byte{25},
			[]plasma.Model{m3},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			for _, x := range tc.models {
				require.NoError(t, db.Set(x.Key, x.Value))
			}
			res, err := queryPrefix(db, tc.prefix)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, res)
		})
	}
}

func TestRawQuery(t *testing.T) {
	db := store.MemStore()
	require.NoError(t, db.Set([]byte("abc"), []byte{1}))
	require.NoError(t, db.Set([]byte("abd"), []byte{2}))
	require.NoError(t, db.Set([]byte("x"), []byte{3}))

	qr := plasma.NewQueryRouter()
	RegisterQuery(qr)
	h := qr.Handler("/")
	require.NotNil(t, h)

	res, err := h.Query(db, plasma.KeyQueryMod, []byte("abd"))
	require.NoError(t, err)
	assert.Equal(t, []plasma.Model{plasma.Pair([]byte("abd"), []byte{2})}, res)

	res, err = h.Query(db, plasma.KeyQueryMod, []byte("missing"))
	require.NoError(t, err)
	assert.Empty(t, res)

	res, err = h.Query(db, plasma.PrefixQueryMod, []byte("ab"))
	require.NoError(t, err)
	assert.Len(t, res, 2)

	res, err = h.Query(db, plasma.PrefixQueryMod, nil)
	require.NoError(t, err)
	assert.Len(t, res, 3)

	_, err = h.Query(db, "range", nil)
	assert.Error(t, err)
}
