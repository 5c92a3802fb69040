package commands

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/codec"
	"github.com/zatoichi-labs/plasma/errors"
)

// Example will be written out to a file, .json and .bin
// Filename should have no path and no extension
type Example struct {
	Filename string
	Obj      interface{}
}

// TestGenCmd generates sample binary and json encodings. Objects that
// implement plasma.Marshaller are written in their own binary encoding,
// anything else in amino.
// of various objects to test clients against.
func TestGenCmd(examples []Example, args []string) error {
	outdir := "testdata"
	if len(args) > 0 {
		outdir = args[0]
	}
	if err := os.MkdirAll(outdir, 0755); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	for _, ex := range examples {
		js, err := codec.MarshalJSON(ex.Obj)
		if err != nil {
			return errors.Wrap(err, ex.Filename)
		}
		if err := write(filepath.Join(outdir, ex.Filename+".json"), js); err != nil {
			return err
		}

		bin, err := binary(ex.Obj)
		if err != nil {
			return errors.Wrap(err, ex.Filename)
		}
		if err := write(filepath.Join(outdir, ex.Filename+".bin"), bin); err != nil {
			return err
		}
	}
	return nil
}

func binary(obj interface{}) ([]byte, error) {
	if m, ok := obj.(plasma.Marshaller); ok {
		return m.Marshal()
	}
	return codec.Marshal(obj)
}

func write(path string, data []byte) error {
	if err := ioutil.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}
