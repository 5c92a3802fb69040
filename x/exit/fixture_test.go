package exit

import (
	"context"
	"testing"

	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/crypto"
	"github.com/zatoichi-labs/plasma/gconf"
	"github.com/zatoichi-labs/plasma/orm"
	"github.com/zatoichi-labs/plasma/plasmatest"
	"github.com/zatoichi-labs/plasma/store"
	"github.com/zatoichi-labs/plasma/x/cash"
	"github.com/zatoichi-labs/plasma/x/commitment"
	"github.com/zatoichi-labs/plasma/x/exitqueue"
	"github.com/zatoichi-labs/plasma/x/proof"
	"github.com/zatoichi-labs/plasma/x/token"
)

// fixture is a chain with all exit dependencies wired to a memory store.
type fixture struct {
	db       plasma.CacheableKVStore
	log      *commitment.Log
	tokens   *token.Registry
	queue    *exitqueue.Queue
	bank     cash.BaseController
	machine  *Machine
	operator plasma.Address
}

func newFixture(t testing.TB, conf Configuration) *fixture {
	t.Helper()
	db := store.MemStore()
	if err := gconf.Save(db, confPkg, &conf); err != nil {
		t.Fatalf("cannot save configuration: %s", err)
	}
	log := commitment.NewLog()
	tokens := token.NewRegistry()
	queue := exitqueue.NewQueue()
	bank := cash.NewController(cash.NewBucket())
	verifier := proof.NewVerifier(log, crypto.Ed25519Verifier{})
	return &fixture{
		db:       db,
		log:      log,
		tokens:   tokens,
		queue:    queue,
		bank:     bank,
		machine:  NewMachine(tokens, queue, verifier, bank),
		operator: plasmatest.NewCondition().Address(),
	}
}

func at(height int64) plasma.Context {
	return plasma.WithHeight(context.Background(), height)
}

// deposit creates a token and escrows its amount in the vault.
func (f *fixture) deposit(t testing.TB, owner plasma.Address, height int64, amount uint64) uint64 {
	t.Helper()
	tok, err := f.tokens.Deposit(f.db, owner, height, amount)
	if err != nil {
		t.Fatalf("cannot deposit: %s", err)
	}
	if amount > 0 {
		if err := f.bank.Issue(f.db, token.VaultAddress, amount); err != nil {
			t.Fatalf("cannot fund vault: %s", err)
		}
	}
	return tok.ID
}

func (f *fixture) fund(t testing.TB, addr plasma.Address, amount uint64) {
	t.Helper()
	if err := f.bank.Issue(f.db, addr, amount); err != nil {
		t.Fatalf("cannot fund %s: %s", addr, err)
	}
}

// commit seals a block at given height holding the transfers and records
// its root. Missing heights below are committed as empty blocks.
func (f *fixture) commit(t testing.TB, height int64, transfers ...*proof.Transfer) {
	t.Helper()
	last, err := f.log.Last(f.db)
	if err != nil {
		t.Fatalf("cannot read last commitment: %s", err)
	}
	if last != 0 {
		for h := last + 1; h < height; h++ {
			f.submit(t, proof.NewBlock(h))
		}
	}
	b := proof.NewBlock(height)
	for _, tr := range transfers {
		if err := b.Add(tr); err != nil {
			t.Fatalf("cannot add transfer: %s", err)
		}
	}
	f.submit(t, b)
}

func (f *fixture) submit(t testing.TB, b *proof.Block) {
	t.Helper()
	if _, err := f.log.Submit(f.db, b.Height(), b.Seal(), f.operator); err != nil {
		t.Fatalf("cannot commit block %d: %s", b.Height(), err)
	}
}

func (f *fixture) wallet(t testing.TB, addr plasma.Address) cash.Wallet {
	t.Helper()
	w, err := f.bank.Balance(f.db, addr)
	if err != nil {
		t.Fatalf("cannot read wallet: %s", err)
	}
	return *w
}

func (f *fixture) token(t testing.TB, id uint64) *token.Token {
	t.Helper()
	tok, err := f.tokens.Get(f.db, id)
	if err != nil {
		t.Fatalf("cannot read token: %s", err)
	}
	return tok
}

// snapshot returns the whole content of the store.
func (f *fixture) snapshot(t testing.TB) map[string]string {
	t.Helper()
	itr, err := f.db.Iterator(nil, nil)
	if err != nil {
		t.Fatalf("cannot iterate: %s", err)
	}
	models, err := orm.ConsumeIterator(itr)
	if err != nil {
		t.Fatalf("cannot iterate: %s", err)
	}
	res := make(map[string]string, len(models))
	for _, m := range models {
		res[string(m.Key)] = string(m.Value)
	}
	return res
}

func mustSign(t testing.TB, key *crypto.PrivateKey, tokenID uint64, to plasma.Address, height int64) *proof.Transfer {
	t.Helper()
	tr, err := proof.SignTransfer(key, tokenID, to, height)
	if err != nil {
		t.Fatalf("cannot sign transfer: %s", err)
	}
	return tr
}

func addr(key *crypto.PrivateKey) plasma.Address {
	return key.PublicKey().Address()
}

func defaultConf() Configuration {
	return Configuration{
		Window:          10,
		Bond:            10,
		ChallengerShare: plasma.Fraction{Numerator: 1, Denominator: 1},
	}
}
