/*
Package plasma defines the common interfaces used to tie together the
extensions of the plasma cash runtime, as well as implementations of some
of the simpler components (when interfaces would be too much overhead).

The runtime is an ABCI application. Every base ledger block is executed
sequentially: user transactions are routed to the extension handlers
(x/token, x/commitment, x/exit, ...) and at the end of every block the
registered tickers run, finalizing exits whose challenge window elapsed.

We pass context through context.Context between app, middleware, and
handlers. To do so, this package defines some common keys to store info,
such as block height and chain id. Each extension, such as x/sigs, may add
its own keys to enrich the context with specific data.

There should exist two functions for every XYZ of type T that we want to
support in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

WithXYZ may panic if the value was previously set to avoid lower-level
modules overwriting the value (eg. height, chain id).
*/
package plasma
