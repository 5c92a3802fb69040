/*
Package app links together all the various components
to construct the plasmad app.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/app"
	"github.com/zatoichi-labs/plasma/crypto"
	"github.com/zatoichi-labs/plasma/errors"
	"github.com/zatoichi-labs/plasma/orm"
	"github.com/zatoichi-labs/plasma/store/iavl"
	"github.com/zatoichi-labs/plasma/x"
	"github.com/zatoichi-labs/plasma/x/cash"
	"github.com/zatoichi-labs/plasma/x/commitment"
	"github.com/zatoichi-labs/plasma/x/exit"
	"github.com/zatoichi-labs/plasma/x/exitqueue"
	"github.com/zatoichi-labs/plasma/x/proof"
	"github.com/zatoichi-labs/plasma/x/sigs"
	"github.com/zatoichi-labs/plasma/x/token"
	"github.com/zatoichi-labs/plasma/x/utils"
)

// Components are the stateless services shared by handlers, queries and
// the end block ticker. All state lives in the store.
type Components struct {
	Bank    cash.BaseController
	Log     *commitment.Log
	Tokens  *token.Registry
	Queue   *exitqueue.Queue
	Machine *exit.Machine
}

// NewComponents wires the exit game to its dependencies.
func NewComponents() *Components {
	bank := cash.NewController(cash.NewBucket())
	log := commitment.NewLog()
	tokens := token.NewRegistry()
	queue := exitqueue.NewQueue()
	verifier := proof.NewVerifier(log, crypto.Ed25519Verifier{})
	return &Components{
		Bank:    bank,
		Log:     log,
		Tokens:  tokens,
		Queue:   queue,
		Machine: exit.NewMachine(tokens, queue, verifier, bank),
	}
}

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// logging, and recovery
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewActionTagger(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, bad tx will increment nonce
		// even if the message fails
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching to every message handler.
func Router(authFn x.Authenticator, c *Components) *app.Router {
	r := app.NewRouter()
	sigs.RegisterRoutes(r, authFn)
	cash.RegisterRoutes(r, authFn, c.Bank)
	token.RegisterRoutes(r, authFn, c.Tokens, c.Bank)
	commitment.RegisterRoutes(r, authFn, c.Log)
	exit.RegisterRoutes(r, authFn, c.Machine)
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/", "/auth", "/wallets", "/tokens", "/commitments",
// "/exits", "/exits/pending" and "/exitqueue"
func QueryRouter(c *Components) plasma.QueryRouter {
	r := plasma.NewQueryRouter()
	r.RegisterAll(
		sigs.RegisterQuery,
		cash.RegisterQuery,
		token.RegisterQuery,
		commitment.RegisterQuery,
		orm.RegisterQuery,
	)
	exit.RegisterQuery(r, c.Machine)
	c.Queue.Register(r)
	return r
}

// Initializers loads the genesis state of every extension.
func Initializers() plasma.Initializer {
	return app.ChainInitializers(
		cash.Initializer{},
		commitment.Initializer{},
		exit.Initializer{},
	)
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack(c *Components) plasma.Handler {
	authFn := Authenticator()
	return Chain().WithHandler(Router(authFn, c))
}

// Ticker finalizes the exits at the end of every block.
func Ticker(c *Components) plasma.Ticker {
	return app.ChainTickers(exit.NewFinalizeTicker(c.Machine))
}

// Application constructs a basic ABCI application with
// the given arguments.
func Application(name string, dbPath string, debug bool) (app.BaseApp, error) {
	ctx := context.Background()
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	c := NewComponents()
	store := app.NewStoreApp(name, kv, QueryRouter(c), ctx).WithInit(Initializers())
	return app.NewBaseApp(store, TxDecoder, Stack(c), Ticker(c), debug), nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (plasma.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.NewMemCommitStore(), nil
	}

	// Expand the path fully
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidently add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into it's components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name)
}
