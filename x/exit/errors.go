package exit

import "github.com/zatoichi-labs/plasma/errors"

// x/exit reserves 120 ~ 129.
var (
	ErrAlreadyExiting   = errors.Register(120, "already exiting")
	ErrInvalidHistory   = errors.Register(121, "invalid history")
	ErrInvalidChallenge = errors.Register(122, "invalid challenge")
	ErrNoSuchClaim      = errors.Register(123, "no such claim")
	ErrNotClaimant      = errors.Register(124, "not claimant")
)
