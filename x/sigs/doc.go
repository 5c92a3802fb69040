/*
Package sigs provides basic authentication
middleware to verify the signatures on the transaction,
and maintain nonces for replay protection.

Every signature covers the chain id, the signer sequence and the canonical
encoding of the transaction without its signatures. The sequence of each
signer is stored in the "sigs" bucket and incremented with every accepted
signature, so a transaction can never be replayed.
*/
package sigs
