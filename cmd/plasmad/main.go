package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tendermint/tendermint/libs/log"
	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/app"
	"github.com/zatoichi-labs/plasma/client"
	plasmad "github.com/zatoichi-labs/plasma/cmd/plasmad/app"
	"github.com/zatoichi-labs/plasma/commands"
	"github.com/zatoichi-labs/plasma/commands/server"
)

var (
	flagHome     = "home"
	flagLogLevel = "log_level"
	varHome      *string
	varLogLevel  *string
)

func init() {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".plasmad")
	varHome = flag.String(flagHome, defaultHome, "directory to store files under")
	varLogLevel = flag.String(flagLogLevel, "info", "minimal level of logged messages: debug, info, error or none")

	flag.CommandLine.Usage = helpMessage
}

func helpMessage() {
	fmt.Println("plasmad")
	fmt.Println("          Plasma Cash exit game node")
	fmt.Println("")
	fmt.Println("help      Print this message")
	fmt.Println("init      Initialize app options in genesis file")
	fmt.Println("start     Run the abci server")
	fmt.Println("validate  Check the app state of genesis files")
	fmt.Println("query     Query the state of a running node")
	fmt.Println("testgen   Write example encodings to a directory")
	fmt.Println("version   Print the app version")
	fmt.Println(`
  -home string
        directory to store files under (default "$HOME/.plasmad")
  -log_level string
        minimal level of logged messages: debug, info, error or none (default "info")

start flags:
  -bind string
        address server listens on (default "tcp://localhost:26658")
  -debug
        call stack returned on error
  -metrics string
        address of the prometheus /metrics endpoint, disabled if empty

query [flags] <path> [hex data]:
  -node string
        rpc address of the node (default "tcp://localhost:26657")
  -prefix
        load every key starting with data`)
}

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Println("Missing command:")
		helpMessage()
		os.Exit(1)
	}

	logger, err := newLogger(*varLogLevel)
	if err != nil {
		fmt.Printf("Error: %+v\n\n", err)
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	rest := flag.Args()[1:]

	switch cmd {
	case "help":
		helpMessage()
	case "init":
		err = server.InitCmd(plasmad.GenInitOptions, logger, *varHome, rest)
	case "start":
		err = server.StartCmd(plasmad.GenerateApp, logger, *varHome, rest)
	case "validate":
		if len(rest) == 0 {
			rest = []string{server.GenesisPath(*varHome)}
		}
		err = server.ValidateGenesis(plasmad.Initializers(), rest)
	case "query":
		err = commands.QueryCmd(os.Stdout, dialNode, rest)
	case "testgen":
		err = commands.TestGenCmd(plasmad.Examples(), rest)
	case "version":
		fmt.Println(plasma.Version())
	default:
		err = fmt.Errorf("unknown command: %s", cmd)
	}

	if err != nil {
		fmt.Printf("Error: %+v\n\n", err)
		helpMessage()
		os.Exit(1)
	}
}

func dialNode(remote string) app.Querier {
	return client.NewHTTPClient(remote)
}

func newLogger(level string) (log.Logger, error) {
	var opt log.Option
	switch level {
	case "debug":
		opt = log.AllowDebug()
	case "info":
		opt = log.AllowInfo()
	case "error":
		opt = log.AllowError()
	case "none":
		opt = log.AllowNone()
	default:
		return nil, fmt.Errorf("unknown log level: %s", level)
	}
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).With("module", "plasma")
	return log.NewFilter(logger, opt), nil
}
