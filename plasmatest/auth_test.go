package plasmatest

import (
	"context"
	"reflect"
	"testing"

	"github.com/zatoichi-labs/plasma"
)

func TestAuthNoSigners(t *testing.T) {
	var a Auth

	if got := a.GetConditions(nil); got != nil {
		t.Fatalf("unexpected conditions: %+v", got)
	}

	if a.HasAddress(nil, NewCondition().Address()) {
		t.Fatal("random condition must not be present")
	}
}

func TestAuthUsingSignerAndSigners(t *testing.T) {
	conds := []plasma.Condition{
		NewCondition(),
		NewCondition(),
		NewCondition(),
	}

	a := Auth{
		Signer:  conds[2],
		Signers: conds[:2],
	}

	if got := a.GetConditions(nil); !reflect.DeepEqual(got, conds) {
		for i, c := range got {
			t.Logf("condition %d: %s", i, c)
		}
		t.Fatalf("unexpected conditions")
	}

	for i, c := range conds {
		if !a.HasAddress(nil, c.Address()) {
			t.Errorf("condition %d (%s) address should be present", i, c)
		}
	}

	if a.HasAddress(nil, NewCondition().Address()) {
		t.Fatal("random condition must not be present")
	}
}

func TestCtxAuth(t *testing.T) {
	a := &CtxAuth{Key: "auth"}
	other := &CtxAuth{Key: "other"}
	cond := NewCondition()

	ctx := a.SetConditions(context.Background(), cond)
	if !a.HasAddress(ctx, cond.Address()) {
		t.Fatal("condition should be present")
	}
	if other.HasAddress(ctx, cond.Address()) {
		t.Fatal("condition must not be visible using a different key")
	}
	if got := a.GetConditions(context.Background()); got != nil {
		t.Fatalf("unexpected conditions: %+v", got)
	}
}

func TestHandlerAndDecoratorCounting(t *testing.T) {
	h := &Handler{}
	d := &Decorator{}
	dh := Decorate(h, d)

	if _, err := dh.Check(nil, nil, &Tx{}); err != nil {
		t.Fatalf("check: %s", err)
	}
	if _, err := dh.Deliver(nil, nil, &Tx{}); err != nil {
		t.Fatalf("deliver: %s", err)
	}
	if h.CallCount() != 2 || d.CallCount() != 2 {
		t.Fatalf("unexpected call count: handler %d, decorator %d", h.CallCount(), d.CallCount())
	}
}
