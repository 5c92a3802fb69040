package app

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/tendermint/tendermint/libs/log"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/crypto"
	"github.com/zatoichi-labs/plasma/errors"
)

// Defaults of the generated genesis configuration.
const (
	defaultWindow  = 100
	defaultBond    = 10
	defaultBalance = 123456789
)

// GenInitOptions will produce some basic options for one rich
// account, that is also the only commitment operator and the owner of
// every configuration. Use it for dev mode.
//
// An existing address can be passed as the first argument, otherwise a new
// key is generated and printed.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var addr plasma.Address
	if len(args) > 0 {
		a, err := plasma.ParseAddress(args[0])
		if err != nil {
			return nil, errors.Wrap(err, "operator address")
		}
		if err := a.Validate(); err != nil {
			return nil, errors.Wrap(err, "operator address")
		}
		addr = a
	} else {
		// if no address provided, auto-generate one
		// and print out the keys
		a, keys, err := GenerateCoinKey()
		if err != nil {
			return nil, err
		}
		addr = a
		fmt.Println(keys)
	}

	opts := fmt.Sprintf(`
          {
            "cash": [
              {
                "address": "%s",
                "amount": %d
              }
            ],
            "conf": {
              "commitment": {
                "owner": "%s",
                "operators": ["%s"]
              },
              "exit": {
                "owner": "%s",
                "window": %d,
                "bond": %d,
                "challenger_share": "1/2",
                "strict_priority": false
              }
            }
          }
	`, addr, defaultBalance, addr, addr, addr, defaultWindow, defaultBond)
	return []byte(opts), nil
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "plasma.db")
	}

	application, err := Application("plasmad", dbPath, debug)
	if err != nil {
		return nil, err
	}

	// set the logger and return
	application.WithLogger(logger)
	return application, nil
}

type output struct {
	Pubkey *crypto.PublicKey  `json:"pub_key"`
	Secret *crypto.PrivateKey `json:"secret"`
}

// GenerateCoinKey returns the address of a public key,
// along with a json representation of the keys.
// You can give tokens to this address and
// import the keys in a client to use them
func GenerateCoinKey() (plasma.Address, string, error) {
	privKey := crypto.GenPrivKeyEd25519()
	pubKey := privKey.PublicKey()
	addr := pubKey.Address()

	out := output{Pubkey: pubKey, Secret: privKey}
	keys, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrInput, err.Error())
	}
	return addr, string(keys), nil
}
