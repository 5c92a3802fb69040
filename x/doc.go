/*
Package x contains some standard extensions.

Extensions are sub-packages that expose handlers, models and messages for
one concern of the chain: token registry, commitment log, exits and so on.
This package itself only holds the authentication abstraction shared by all
of them.
*/
package x
