package bech32

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestBech32EncodeDecode(t *testing.T) {
	cases := map[string]struct {
		enc     string
		hrp     string
		payload string
	}{
		"text payload": {
			enc:     `plasma1w3jhxapdwpshjmr0v9jqxw4ff0`,
			hrp:     "plasma",
			payload: "746573742d7061796c6f6164",
		},
		"address sized payload": {
			enc:     `plasma1qqqsyqcyq5rqwzqfpg9scrgwpugpzysn68u8ms`,
			hrp:     "plasma",
			payload: "000102030405060708090a0b0c0d0e0f10111213",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			want, err := hex.DecodeString(tc.payload)
			if err != nil {
				t.Fatal(err)
			}

			hrp, payload, err := Decode(tc.enc)
			if err != nil {
				t.Fatal(err)
			}
			if hrp != tc.hrp {
				t.Fatalf("want %q hrp, got %q", tc.hrp, hrp)
			}
			if !bytes.Equal(want, payload) {
				t.Logf("want %d", want)
				t.Logf("got  %d", payload)
				t.Fatal("invalid decode")
			}

			raw, err := Encode(hrp, payload)
			if err != nil {
				t.Fatalf("cannot encode: %s", err)
			}
			if string(raw) != tc.enc {
				t.Fatalf("invalid encoding: %q", raw)
			}
		})
	}
}

func TestBech32DecodeInvalid(t *testing.T) {
	// last checksum character altered
	if _, _, err := Decode(`plasma1w3jhxapdwpshjmr0v9jqxw4ff2`); err == nil {
		t.Fatal("want checksum error")
	}
}
