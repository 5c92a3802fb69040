/*
Package errors implements the error kinds used across the plasma runtime.

Reuse the root errors declared in this package where possible and register
a package specific kind only when a caller has to tell it apart, for example
the proof failures in x/proof or the exit precondition violations in x/exit.
Every kind carries a unique ABCI code, so a client can act on the kind of a
rejected transaction without parsing the log message.

Register a custom kind with Register(code, description). Create instances
with ErrXyz.New("...") or errors.Wrap(err, "...") at the point of failure so
that a stacktrace is attached. Use WithKind when an error must be reported
as one kind while keeping a more specific cause, for example an invalid
challenge caused by a missing inclusion proof.

	%s is just the error message
	%+v is the full stack trace
*/
package errors
