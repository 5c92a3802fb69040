package orm

import "github.com/zatoichi-labs/plasma"

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	plasma.Persistent
	Validate() error
}
