package plasmatest

import (
	"context"
	"fmt"

	"github.com/zatoichi-labs/plasma"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced conditions.
// You can use either Signer or Signers (or both) attributes to reference
// conditions. Each time all signers (regardless which attribute) are
// considered.
type Auth struct {
	// Signer represents an authentication of a single signer.
	Signer plasma.Condition

	// Signers represents an authentication of multiple signers.
	Signers []plasma.Condition
}

// GetConditions returns all declared signers.
func (a *Auth) GetConditions(plasma.Context) []plasma.Condition {
	if a.Signer != nil {
		return append(a.Signers, a.Signer)
	}
	return a.Signers
}

// HasAddress returns true if any of the signers has given address.
func (a *Auth) HasAddress(ctx plasma.Context, addr plasma.Address) bool {
	for _, s := range a.Signers {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	if a.Signer == nil {
		return false
	}
	return addr.Equals(a.Signer.Address())
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using context to store and retrieve permissions.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context. For
	// convenience only string type keys are allowed.
	Key string
}

type ctxAuthKey string

// SetConditions returns a context authenticating given conditions.
func (a *CtxAuth) SetConditions(ctx plasma.Context, permissions ...plasma.Condition) plasma.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), permissions)
}

// GetConditions returns the conditions stored in the context.
func (a *CtxAuth) GetConditions(ctx plasma.Context) []plasma.Condition {
	val := ctx.Value(ctxAuthKey(a.Key))
	if val == nil {
		return nil
	}
	conds, ok := val.([]plasma.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []plasma.Condition got %T", val))
	}
	return conds
}

// HasAddress returns true if any condition stored in the context has given
// address.
func (a *CtxAuth) HasAddress(ctx plasma.Context, addr plasma.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
