package proof

import (
	"fmt"

	"github.com/zatoichi-labs/plasma/errors"
)

// x/proof reserves 110 ~ 119.
var (
	ErrBadSignature  = errors.Register(110, "bad signature")
	ErrNotIncluded   = errors.Register(111, "not included")
	ErrHistoryBroken = errors.Register(112, "history broken")
	ErrOwnerMismatch = errors.Register(113, "owner mismatch")
)

// HistoryError is returned when a history fails verification. Index is the
// position of the offending transfer; -1 refers to the deposit itself. The
// cause is the specific proof error, so ErrBadSignature.Is(err) holds for a
// failed signature of any step.
type HistoryError struct {
	TokenID uint64
	Index   int
	Err     error
}

func (e *HistoryError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("token %d deposit: %s", e.TokenID, e.Err)
	}
	return fmt.Sprintf("token %d transfer %d: %s", e.TokenID, e.Index, e.Err)
}

// Cause returns the reason of the failure.
func (e *HistoryError) Cause() error {
	return e.Err
}
