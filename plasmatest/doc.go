/*
Package plasmatest provides mocks and helpers for testing extensions:
authenticators, transactions, handlers and decorators that do not need any
real signatures or encoding.
*/
package plasmatest
