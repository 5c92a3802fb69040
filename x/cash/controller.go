package cash

import (
	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/errors"
)

// Balance is the read only part of the Controller.
type Balance interface {
	Balance(db plasma.ReadOnlyKVStore, addr plasma.Address) (*Wallet, error)
}

// Controller is the functionality needed by other extensions to move and
// escrow funds.
type Controller interface {
	Balance

	// Issue adds new funds to the available balance.
	Issue(db plasma.KVStore, dest plasma.Address, amount uint64) error
	// Transfer moves available funds between wallets.
	Transfer(db plasma.KVStore, src, dest plasma.Address, amount uint64) error
	// Lock moves available funds into the locked balance of the same
	// wallet.
	Lock(db plasma.KVStore, addr plasma.Address, amount uint64) error
	// Release moves locked funds back to the available balance.
	Release(db plasma.KVStore, addr plasma.Address, amount uint64) error
	// Forfeit moves locked funds of src to the available balance of
	// dest.
	Forfeit(db plasma.KVStore, src, dest plasma.Address, amount uint64) error
	// Burn destroys locked funds.
	Burn(db plasma.KVStore, addr plasma.Address, amount uint64) error
}

// BaseController is the default Controller implementation, storing wallets
// in a Bucket.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a controller using given bucket.
func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the wallet of given address. A missing wallet is empty.
func (c BaseController) Balance(db plasma.ReadOnlyKVStore, addr plasma.Address) (*Wallet, error) {
	return c.bucket.GetOrCreate(db, addr)
}

// Issue adds amount to the available balance of dest. Fails if it
// overflows the wallet.
func (c BaseController) Issue(db plasma.KVStore, dest plasma.Address, amount uint64) error {
	w, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	if w.Available, err = add(w.Available, amount); err != nil {
		return err
	}
	if _, err := w.Total(); err != nil {
		return err
	}
	return c.bucket.Save(db, dest, w)
}

// Transfer moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// funds, it fails.
func (c BaseController) Transfer(db plasma.KVStore, src, dest plasma.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive transfer")
	}
	sender, err := c.bucket.Get(db, src)
	if err != nil {
		return err
	}
	if sender == nil {
		return errors.Wrapf(errors.ErrEmpty, "empty account %s", src)
	}
	if sender.Available < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "available %d, required %d", sender.Available, amount)
	}
	sender.Available -= amount
	if err := c.bucket.Save(db, src, sender); err != nil {
		return err
	}
	return c.Issue(db, dest, amount)
}

// Lock moves amount from available to locked funds of addr.
func (c BaseController) Lock(db plasma.KVStore, addr plasma.Address, amount uint64) error {
	w, err := c.bucket.GetOrCreate(db, addr)
	if err != nil {
		return err
	}
	if w.Available < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "available %d, required %d", w.Available, amount)
	}
	w.Available -= amount
	w.Locked += amount
	return c.bucket.Save(db, addr, w)
}

// Release moves amount from locked to available funds of addr.
func (c BaseController) Release(db plasma.KVStore, addr plasma.Address, amount uint64) error {
	w, err := c.takeLocked(db, addr, amount)
	if err != nil {
		return err
	}
	w.Available += amount
	return c.bucket.Save(db, addr, w)
}

// Forfeit moves amount from the locked funds of src to the available funds
// of dest.
func (c BaseController) Forfeit(db plasma.KVStore, src, dest plasma.Address, amount uint64) error {
	w, err := c.takeLocked(db, src, amount)
	if err != nil {
		return err
	}
	if err := c.bucket.Save(db, src, w); err != nil {
		return err
	}
	if amount == 0 {
		return nil
	}
	return c.Issue(db, dest, amount)
}

// Burn destroys amount of the locked funds of addr.
func (c BaseController) Burn(db plasma.KVStore, addr plasma.Address, amount uint64) error {
	w, err := c.takeLocked(db, addr, amount)
	if err != nil {
		return err
	}
	return c.bucket.Save(db, addr, w)
}

func (c BaseController) takeLocked(db plasma.KVStore, addr plasma.Address, amount uint64) (*Wallet, error) {
	w, err := c.bucket.GetOrCreate(db, addr)
	if err != nil {
		return nil, err
	}
	if w.Locked < amount {
		return nil, errors.Wrapf(errors.ErrInsufficientAmount, "locked %d, required %d", w.Locked, amount)
	}
	w.Locked -= amount
	return w, nil
}

func add(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, errors.Wrap(errors.ErrOverflow, "balance")
	}
	return sum, nil
}
