package plasma

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/zatoichi-labs/plasma/errors"
)

// Fraction is a rational number used to split an amount, for example the
// part of a forfeited bond that goes to a successful challenger.
type Fraction struct {
	Numerator   uint32 `json:"numerator"`
	Denominator uint32 `json:"denominator"`
}

// String returns a human readable fraction representation.
func (f *Fraction) String() string {
	if f == nil {
		return "nil"
	}
	if f.Numerator == 0 {
		return "0"
	}
	if f.Denominator == 1 {
		return fmt.Sprint(f.Numerator)
	}
	return fmt.Sprintf("%d/%d", f.Numerator, f.Denominator)
}

// MarshalJSON uses the "n/d" form, which decodes back to the same value.
func (f Fraction) MarshalJSON() ([]byte, error) {
	return json.Marshal(fmt.Sprintf("%d/%d", f.Numerator, f.Denominator))
}

// UnmarshalJSON accepts both "n/d" strings and the numerator/denominator
// object form.
func (f *Fraction) UnmarshalJSON(raw []byte) error {
	// Prioritize human readable format.
	var human string
	if err := json.Unmarshal(raw, &human); err == nil {
		frac, err := ParseFractionString(human)
		if err != nil {
			return errors.Wrap(err, "fraction string")
		}
		*f = *frac
		return nil
	}

	var frac struct {
		Numerator   uint32
		Denominator uint32
	}
	if err := json.Unmarshal(raw, &frac); err != nil {
		return err
	}
	f.Numerator = frac.Numerator
	f.Denominator = frac.Denominator
	return nil
}

// Validate returns an error if this fraction represents an invalid value.
func (f Fraction) Validate() error {
	if f.Denominator == 0 && f.Numerator != 0 {
		return errors.Wrap(errors.ErrState, "zero division")
	}
	return nil
}

// IsProper returns true if the fraction is not greater than one.
func (f Fraction) IsProper() bool {
	return f.Numerator == 0 || f.Numerator <= f.Denominator
}

// Portion returns floor(amount * f). Only proper fractions can be applied,
// so that the result never exceeds the amount.
func (f Fraction) Portion(amount uint64) (uint64, error) {
	if err := f.Validate(); err != nil {
		return 0, err
	}
	if !f.IsProper() {
		return 0, errors.Wrapf(errors.ErrOverflow, "fraction %s greater than one", f.String())
	}
	if f.Numerator == 0 {
		return 0, nil
	}
	num, den := uint64(f.Numerator), uint64(f.Denominator)
	// Split to avoid amount*num overflowing.
	q, r := amount/den, amount%den
	return q*num + r*num/den, nil
}

// Normalize returns a new fraction instance that has its numerator and
// denominator reduced to the smallest possible representation.
func (f Fraction) Normalize() Fraction {
	div := uintGcd(f.Numerator, f.Denominator)
	if div == 0 {
		return f
	}
	return Fraction{
		Numerator:   f.Numerator / div,
		Denominator: f.Denominator / div,
	}
}

func uintGcd(a, b uint32) uint32 {
	for b != 0 {
		t := b
		b = a % b
		a = t
	}
	return a
}

// ParseFractionString returns a fraction value that is represented by given
// string. This function fails if given string does not represent a fraction
// value.
// This function does not fail if representation format is correct but the value
// is invalid (i.e. value of "2/0").
func ParseFractionString(raw string) (*Fraction, error) {
	chunks := strings.SplitN(raw, "/", 2)
	n, err := strconv.ParseUint(strings.TrimSpace(chunks[0]), 10, 32)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, "numerator")
	}
	if len(chunks) == 1 {
		return &Fraction{Numerator: uint32(n), Denominator: 1}, nil
	}
	d, err := strconv.ParseUint(strings.TrimSpace(chunks[1]), 10, 32)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, "denominator")
	}
	return &Fraction{Numerator: uint32(n), Denominator: uint32(d)}, nil
}
