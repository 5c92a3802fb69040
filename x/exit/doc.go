/*
Package exit implements the exit game of the child chain.

A token holder requests an exit by presenting the history of the token
since its deposit. The claim stays pending for a configured number of
blocks, during which anyone can challenge it with a signed and committed
transfer that proves the history wrong. An unchallenged claim is finalized
at the end of the first block after its challenge period, in priority
order, and the token value is paid to the claimant.

The claimant locks a bond when requesting an exit. The bond is returned on
finalization or cancellation and forfeited when the claim is successfully
challenged: a configured share goes to the challenger and the rest is
burned.
*/
package exit
