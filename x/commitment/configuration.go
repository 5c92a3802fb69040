package commitment

import (
	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/codec"
	"github.com/zatoichi-labs/plasma/errors"
	"github.com/zatoichi-labs/plasma/gconf"
)

const confPkg = "commitment"

// Configuration declares who may submit commitments.
type Configuration struct {
	// Owner may update this configuration.
	Owner plasma.Address `json:"owner"`
	// Operators are the addresses allowed to submit commitments.
	Operators []plasma.Address `json:"operators"`
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

// Marshal uses the amino binary encoding.
func (c *Configuration) Marshal() ([]byte, error) {
	return codec.Marshal(c)
}

// Unmarshal uses the amino binary encoding.
func (c *Configuration) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, c)
}

// GetOwner returns the address allowed to change the configuration.
func (c *Configuration) GetOwner() plasma.Address {
	return c.Owner
}

// Validate requires at least one valid operator.
func (c *Configuration) Validate() error {
	if len(c.Owner) != 0 {
		if err := c.Owner.Validate(); err != nil {
			return errors.Wrap(err, "owner")
		}
	}
	if len(c.Operators) == 0 {
		return errors.Wrap(errors.ErrEmpty, "operators")
	}
	for i, op := range c.Operators {
		if err := op.Validate(); err != nil {
			return errors.Wrapf(err, "operator %d", i)
		}
	}
	return nil
}

// IsOperator returns true if addr is one of the operators.
func (c *Configuration) IsOperator(addr plasma.Address) bool {
	for _, op := range c.Operators {
		if op.Equals(addr) {
			return true
		}
	}
	return false
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, confPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}

// Initializer loads the configuration from the genesis "conf" section.
type Initializer struct{}

var _ plasma.Initializer = Initializer{}

// FromGenesis stores the commitment configuration.
func (Initializer) FromGenesis(opts plasma.Options, db plasma.KVStore) error {
	var conf Configuration
	return gconf.InitConfig(db, opts, confPkg, &conf)
}
