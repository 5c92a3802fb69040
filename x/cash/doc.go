/*
Package cash implements wallets holding a single native currency.

Each wallet has an available and a locked balance. Locked funds back the
bonds of pending exits: they can be released back to the available balance,
forfeited to another wallet or burned, but never spent by the owner.
*/
package cash
