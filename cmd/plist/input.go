package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/plist-format/go-plist/bplist"
	"github.com/signadot/plist-format/go-plist/format"
	"github.com/signadot/plist-format/go-plist/ir"

	"github.com/scott-cotton/cli"
)

// input is one document read from a file or stdin.
type input struct {
	name   string
	data   []byte
	format format.Format
	node   *ir.Node
	// doc is set for binary inputs
	doc *bplist.Document
}

func readInput(cc *cli.Context, name string) (*input, error) {
	var r io.Reader
	if name == "-" {
		r = cc.In
	} else {
		f, err := os.Open(name)
		if err != nil {
			return nil, fmt.Errorf("could not open %q: %w", name, err)
		}
		defer f.Close()
		r = f
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", name, err)
	}
	in, err := decodeInput(d)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", name, err)
	}
	in.name = name
	return in, nil
}

// decodeInput decodes d as a binary property list or as IR JSON, whichever
// it looks like.
func decodeInput(d []byte) (*input, error) {
	f, err := format.Detect(d)
	if err != nil {
		return nil, err
	}
	in := &input{data: d, format: f}
	switch f {
	case format.BinaryFormat:
		doc, err := bplist.Parse(d)
		if err != nil {
			return nil, err
		}
		node, err := doc.Root()
		if err != nil {
			return nil, err
		}
		in.doc, in.node = doc, node
	case format.JSONFormat:
		node, err := ir.FromJSON(d)
		if err != nil {
			return nil, err
		}
		in.node = node
	default:
		return nil, fmt.Errorf("%w: cannot read %s", format.ErrBadFormat, f)
	}
	return in, nil
}

// forInputs calls f on each input named by args, or on stdin when there
// are none.
func forInputs(cc *cli.Context, args []string, f func(*input) error) error {
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		in, err := readInput(cc, arg)
		if err != nil {
			return err
		}
		if err := f(in); err != nil {
			return fmt.Errorf("error processing %s: %w", arg, err)
		}
	}
	return nil
}
