package commitment

import "github.com/zatoichi-labs/plasma/errors"

// x/commitment reserves 100 ~ 109.
var (
	ErrOutOfOrder = errors.Register(100, "commitment out of order")
)
