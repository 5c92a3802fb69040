/*
Package utils contains decorators shared by all extensions: panic recovery,
transaction logging, savepoints that discard the writes of a failed
transaction and action tagging.
*/
package utils
