package cash

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/store"
)

func TestGenesisInitializer(t *testing.T) {
	Convey("Given the cash initializer", t, func() {
		db := store.MemStore()
		init := Initializer{}
		control := NewController(NewBucket())

		Convey("Missing configuration creates no wallets", func() {
			So(init.FromGenesis(plasma.Options{}, db), ShouldBeNil)
		})

		Convey("Wallets are loaded from the genesis", func() {
			opts := plasma.Options{
				"cash": []byte(`[
					{"address": "0102030405060708090021222324252627282930", "amount": 1000}
				]`),
			}
			So(init.FromGenesis(opts, db), ShouldBeNil)

			addr := plasma.Address{1, 2, 3, 4, 5, 6, 7, 8, 9, 0, 0x21, 0x22, 0x23, 0x24, 0x25, 0x26, 0x27, 0x28, 0x29, 0x30}
			w, err := control.Balance(db, addr)
			So(err, ShouldBeNil)
			So(w.Available, ShouldEqual, uint64(1000))
			So(w.Locked, ShouldEqual, uint64(0))
		})

		Convey("Invalid address is rejected", func() {
			opts := plasma.Options{
				"cash": []byte(`[{"amount": 5}]`),
			}
			So(init.FromGenesis(opts, db), ShouldNotBeNil)
		})
	})
}
