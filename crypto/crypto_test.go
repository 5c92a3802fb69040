package crypto

import (
	"bytes"
	"testing"

	"github.com/zatoichi-labs/plasma/errors"
	"github.com/zatoichi-labs/plasma/plasmatest/assert"
)

func TestEd25519Signing(t *testing.T) {
	private := GenPrivKeyEd25519()
	public := private.PublicKey()

	msg := []byte("foobar")
	msg2 := []byte("dingbooms")

	sig, err := private.Sign(msg)
	assert.Nil(t, err)
	sig2, err := private.Sign(msg2)
	assert.Nil(t, err)

	if bytes.Equal(sig, sig2) {
		t.Fatal("different messages produce the same signature")
	}

	if !public.Verify(msg, sig) {
		t.Fatal("cannot verify a message signed with this public key")
	}
	if !public.Verify(msg2, sig2) {
		t.Fatal("cannot verify a message signed with this public key")
	}
	if public.Verify(msg, sig2) {
		t.Fatal("verified message signature of the wrong message")
	}
	if public.Verify(msg, nil) {
		t.Fatal("verified a nil signature of a message")
	}
}

func TestEd25519PrivateKeySign(t *testing.T) {
	pk := &PrivateKey{Ed25519: make([]byte, 64)}
	sig, err := pk.Sign([]byte("foo bar"))
	if err != nil {
		t.Fatalf("cannot sign: %s", err)
	}
	want := []byte("\273\363\352\214\365\004\271\371|}\272G\316\316K\005\337Bm\340\322\007W\224-9\272\371\226\375DB\325\325\373#e\321^\030\367]\370\334\372\017\223`\036\236Ue\211\244\220\002\004\026K\227\306i\002\017")
	if !bytes.Equal(want, sig) {
		t.Logf("want %X", want)
		t.Logf(" got %X", sig)
		t.Fatal("invalid signature")
	}
}

func TestEmptyPrivateKeySign(t *testing.T) {
	emptyKey := &PrivateKey{}
	if sig, err := emptyKey.Sign([]byte("foo bar")); err == nil {
		t.Fatalf("want an error, got %q", sig)
	}
}

func TestEd25519Address(t *testing.T) {
	pub := GenPrivKeyEd25519().PublicKey()
	pub2 := GenPrivKeyEd25519().PublicKey()
	empty := PublicKey{}

	assert.Nil(t, pub.Condition().Validate())
	assert.Nil(t, pub2.Condition().Validate())
	if bytes.Equal(pub.Condition(), pub2.Condition()) {
		t.Fatal("two different keys produce the same condition")
	}
	assert.Nil(t, pub.Address().Validate())
	assert.Nil(t, empty.Condition())
}

func TestKeyFromSeedIsDeterministic(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 32)
	a := PrivKeyEd25519FromSeed(seed).PublicKey()
	b := PrivKeyEd25519FromSeed(seed).PublicKey()
	assert.Equal(t, a.Address(), b.Address())
}

func TestEd25519Verifier(t *testing.T) {
	key := GenPrivKeyEd25519()
	msg := []byte("transfer")
	sig, err := key.Sign(msg)
	assert.Nil(t, err)

	cases := map[string]struct {
		pub     *PublicKey
		msg     []byte
		sig     []byte
		wantErr *errors.Error
	}{
		"valid": {
			pub: key.PublicKey(),
			msg: msg,
			sig: sig,
		},
		"other message": {
			pub:     key.PublicKey(),
			msg:     []byte("other"),
			sig:     sig,
			wantErr: errors.ErrUnauthorized,
		},
		"other key": {
			pub:     GenPrivKeyEd25519().PublicKey(),
			msg:     msg,
			sig:     sig,
			wantErr: errors.ErrUnauthorized,
		},
		"missing key": {
			msg:     msg,
			sig:     sig,
			wantErr: errors.ErrEmpty,
		},
		"malformed key": {
			pub:     &PublicKey{Ed25519: []byte("short")},
			msg:     msg,
			sig:     sig,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := Ed25519Verifier{}.Verify(tc.pub, tc.msg, tc.sig)
			assert.ErrKind(t, tc.wantErr, err)
		})
	}
}
