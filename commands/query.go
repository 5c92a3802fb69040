package commands

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"io"
	"io/ioutil"
	"strings"

	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/app"
	"github.com/zatoichi-labs/plasma/errors"
)

// Dialer connects to the node at given rpc address.
type Dialer func(remote string) app.Querier

// queryResult is a single model printed by QueryCmd.
type queryResult struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// QueryCmd queries the state of a running node and prints every returned
// model as a JSON line of hex encoded key and value.
//
//   query [-node tcp://localhost:26657] [-prefix] <path> [hex data]
//
// Path is a registered query path, for example "/exits" or "/wallets".
func QueryCmd(out io.Writer, dial Dialer, args []string) error {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	fs.SetOutput(ioutil.Discard)
	node := fs.String("node", "tcp://localhost:26657", "rpc address of the node")
	prefix := fs.Bool("prefix", false, "load every key starting with data")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if fs.NArg() < 1 || fs.NArg() > 2 {
		return errors.Wrap(errors.ErrInput, "usage: query [-node addr] [-prefix] <path> [hex data]")
	}

	path := fs.Arg(0)
	if !strings.HasPrefix(path, "/") {
		return errors.Wrapf(errors.ErrInput, "invalid path %q", path)
	}
	if *prefix {
		path += "?" + plasma.PrefixQueryMod
	}
	var data []byte
	if fs.NArg() == 2 {
		raw, err := hex.DecodeString(fs.Arg(1))
		if err != nil {
			return errors.Wrapf(errors.ErrInput, "data: %s", err)
		}
		data = raw
	}

	res := dial(*node).Query(abci.RequestQuery{Path: path, Data: data})
	if res.Code != errors.SuccessABCICode {
		return errors.ABCIError(res.Code, res.Log)
	}
	var keys, values app.ResultSet
	if err := keys.Unmarshal(res.Key); err != nil {
		return errors.Wrap(err, "keys")
	}
	if err := values.Unmarshal(res.Value); err != nil {
		return errors.Wrap(err, "values")
	}
	models, err := app.JoinResults(&keys, &values)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	for _, m := range models {
		r := queryResult{Key: hex.EncodeToString(m.Key), Value: hex.EncodeToString(m.Value)}
		if err := enc.Encode(r); err != nil {
			return errors.Wrap(err, "write result")
		}
	}
	return nil
}
