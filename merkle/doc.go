/*
Package merkle implements the sparse Merkle tree used to commit to all token
transfers of a child chain block.

The tree has a leaf for every possible token id, so it is 64 levels deep.
Leaves that were not touched in a block hold 32 zero bytes and every empty
subtree hashes to a precomputed value, so only the path of a single token
has to be provided to prove its inclusion or its absence.

Nodes are hashed with Keccak-256 as keccak(left || right). At level h the
bit h of the token id tells whether the running node is the right (1) or
the left (0) child of its parent.
*/
package merkle
