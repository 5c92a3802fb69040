/*
Package commitment implements the log of child chain block roots.

The operator submits the sparse Merkle root of every child chain block.
Commitments are immutable, keyed by height and recorded strictly in order
without gaps. They are the only source of truth the proof verifier reads
from.
*/
package commitment
