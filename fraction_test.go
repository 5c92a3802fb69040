package plasma

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/zatoichi-labs/plasma/errors"
)

func TestFractionUnmarshalJSON(t *testing.T) {
	cases := map[string]struct {
		raw      string
		wantFrac Fraction
		wantErr  bool
	}{
		"zero": {
			raw:      `"0"`,
			wantFrac: Fraction{Denominator: 1},
		},
		"integer human format number": {
			raw:      `"4"`,
			wantFrac: Fraction{Numerator: 4, Denominator: 1},
		},
		"zero numerator": {
			raw:      `"0/123"`,
			wantFrac: Fraction{Denominator: 123},
		},
		"human readable format": {
			raw:      `"1/2"`,
			wantFrac: Fraction{Numerator: 1, Denominator: 2},
		},
		"human readable format, too many separators": {
			raw:     `"1/2/3"`,
			wantErr: true,
		},
		"human readable format, floating point number": {
			raw:     `"1/3.3"`,
			wantErr: true,
		},
		"human readable format, signed number": {
			raw:     `"-1"`,
			wantErr: true,
		},
		"verbose format": {
			raw:      `{"numerator": 1, "denominator": 2}`,
			wantFrac: Fraction{Numerator: 1, Denominator: 2},
		},
		"verbose format only denominator": {
			raw:      `{"denominator": 2}`,
			wantFrac: Fraction{Numerator: 0, Denominator: 2},
		},
		"random string characters": {
			raw:     `"asdlkhsdalhksda"`,
			wantErr: true,
		},
		"number is not acceptable": {
			raw:     `12345`,
			wantErr: true,
		},
		"whitespace is irrelevant for human format": {
			raw:      `"\t 3 / \t 2 "`,
			wantFrac: Fraction{Numerator: 3, Denominator: 2},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got Fraction
			err := json.Unmarshal([]byte(tc.raw), &got)
			gotErr := err != nil
			if tc.wantErr != gotErr {
				t.Fatalf("want error=%v, got %v", tc.wantErr, err)
			}
			if err == nil && !reflect.DeepEqual(got, tc.wantFrac) {
				t.Fatalf("want %+v, got %+v", tc.wantFrac, got)
			}
		})
	}
}

func TestFractionMarshalJSON(t *testing.T) {
	f := Fraction{Numerator: 4, Denominator: 5}
	b, err := json.Marshal(f)
	if err != nil {
		t.Fatal(err)
	}
	const want = `"4/5"`
	if string(b) != want {
		t.Fatalf("unexpected JSON format: %q", b)
	}

	var back Fraction
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if back != f {
		t.Fatalf("want %v, got %v", f, back)
	}

	var zero, backZero Fraction
	b, err = json.Marshal(zero)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(b, &backZero); err != nil {
		t.Fatal(err)
	}
	if backZero != zero {
		t.Fatalf("zero value changed to %v", backZero)
	}
}

func TestFractionPortion(t *testing.T) {
	cases := map[string]struct {
		frac    Fraction
		amount  uint64
		want    uint64
		wantErr *errors.Error
	}{
		"half": {
			frac:   Fraction{Numerator: 1, Denominator: 2},
			amount: 100,
			want:   50,
		},
		"rounded down": {
			frac:   Fraction{Numerator: 1, Denominator: 3},
			amount: 100,
			want:   33,
		},
		"zero value fraction": {
			frac:   Fraction{},
			amount: 100,
			want:   0,
		},
		"whole": {
			frac:   Fraction{Numerator: 7, Denominator: 7},
			amount: 100,
			want:   100,
		},
		"no overflow for huge amounts": {
			frac:   Fraction{Numerator: 3, Denominator: 4},
			amount: 1 << 63,
			want:   3 << 61,
		},
		"more than one": {
			frac:    Fraction{Numerator: 3, Denominator: 2},
			amount:  100,
			wantErr: errors.ErrOverflow,
		},
		"zero division": {
			frac:    Fraction{Numerator: 3},
			amount:  100,
			wantErr: errors.ErrState,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := tc.frac.Portion(tc.amount)
			if tc.wantErr != nil {
				if !tc.wantErr.Is(err) {
					t.Fatalf("want %s error, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if got != tc.want {
				t.Fatalf("want %d, got %d", tc.want, got)
			}
		})
	}
}

func TestFractionNormalize(t *testing.T) {
	got := Fraction{Numerator: 6, Denominator: 8}.Normalize()
	if want := (Fraction{Numerator: 3, Denominator: 4}); got != want {
		t.Fatalf("want %v, got %v", want, got)
	}
	if got := (Fraction{}).Normalize(); got != (Fraction{}) {
		t.Fatalf("zero value changed: %v", got)
	}
}
