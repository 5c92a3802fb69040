/*
Package proof verifies the off-chain history of a token.

A history is the list of transfers of a single token, starting at its
deposit. Every transfer is signed by its sender and included in the block
commitment of its height. The Verifier checks signatures and inclusion
proofs against the roots stored in the commitment log and walks the chain of
owners. It never writes to the store.
*/
package proof
