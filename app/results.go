package app

import (
	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/codec"
	"github.com/zatoichi-labs/plasma/errors"
)

// ResultSet holds the keys or the values returned by a query. Both sides of
// a query response carry one, and they are always the same length.
type ResultSet struct {
	Results [][]byte `json:"results"`
}

var _ plasma.Persistent = (*ResultSet)(nil)

// Marshal serializes the set.
func (r *ResultSet) Marshal() ([]byte, error) {
	return codec.Marshal(r)
}

// Unmarshal loads the set from its serialized form.
func (r *ResultSet) Unmarshal(bz []byte) error {
	// an empty set encodes to no bytes at all
	if len(bz) == 0 {
		r.Results = nil
		return nil
	}
	return codec.Unmarshal(bz, r)
}

// ResultsFromKeys returns a ResultSet of all keys
// given a set of models
func ResultsFromKeys(models []plasma.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Key
	}
	return &ResultSet{Results: res}
}

// ResultsFromValues returns a ResultSet of all values
// given a set of models
func ResultsFromValues(models []plasma.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Value
	}
	return &ResultSet{Results: res}
}

// JoinResults inverts ResultsFromKeys and ResultsFromValues
// and makes then a consistent whole again
func JoinResults(keys, values *ResultSet) ([]plasma.Model, error) {
	kref, vref := keys.Results, values.Results
	if len(kref) != len(vref) {
		return nil, errors.Wrapf(errors.ErrInput, "mismatched result set size: %d keys, %d values", len(kref), len(vref))
	}
	mods := make([]plasma.Model, len(kref))
	for i := range mods {
		mods[i] = plasma.Pair(kref[i], vref[i])
	}
	return mods, nil
}

// UnmarshalOneResult will parse a resultset, and
// it if is not empty, unmarshal the first result into o
func UnmarshalOneResult(bz []byte, o plasma.Persistent) error {
	var res ResultSet
	if err := res.Unmarshal(bz); err != nil {
		return err
	}
	if len(res.Results) == 0 {
		return nil
	}
	return o.Unmarshal(res.Results[0])
}
