/*
Package token implements the registry of deposited tokens.

Every deposit creates a new non-fungible token with a fresh id. The value of
the deposit is kept in the vault until the token is withdrawn. A token is
Deposited, Exiting or Withdrawn; Withdrawn is terminal and such a token is
never modified again.
*/
package token
