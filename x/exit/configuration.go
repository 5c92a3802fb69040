package exit

import (
	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/codec"
	"github.com/zatoichi-labs/plasma/errors"
	"github.com/zatoichi-labs/plasma/gconf"
)

const confPkg = "exit"

// Configuration holds the policy of the exit game.
type Configuration struct {
	// Owner may update this configuration.
	Owner plasma.Address `json:"owner"`
	// Window is the number of blocks a claim can be challenged for.
	Window int64 `json:"window"`
	// Bond is locked from the claimant for the time of the exit.
	Bond uint64 `json:"bond"`
	// ChallengerShare is the part of a forfeited bond paid to the
	// challenger. The rest is burned.
	ChallengerShare plasma.Fraction `json:"challenger_share"`
	// StrictPriority stops finalization at the first claim in priority
	// order whose window did not elapse. Otherwise every claim with an
	// elapsed window is finalized, still in priority order.
	StrictPriority bool `json:"strict_priority"`
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

// Validate checks the policy values.
func (c *Configuration) Validate() error {
	if len(c.Owner) != 0 {
		if err := c.Owner.Validate(); err != nil {
			return errors.Wrap(err, "owner")
		}
	}
	if c.Window <= 0 {
		return errors.Wrapf(errors.ErrInput, "window %d", c.Window)
	}
	if err := c.ChallengerShare.Validate(); err != nil {
		return errors.Wrap(err, "challenger share")
	}
	if !c.ChallengerShare.IsProper() {
		return errors.Wrapf(errors.ErrInput, "challenger share %s greater than one", c.ChallengerShare.String())
	}
	return nil
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

// FromGenesis stores the exit configuration.
func (Initializer) FromGenesis(opts plasma.Options, db plasma.KVStore) error {
	var conf Configuration
	return gconf.InitConfig(db, opts, confPkg, &conf)
}
