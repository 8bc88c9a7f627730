package main

import (
	"fmt"
	"io"

	"github.com/signadot/plist-format/go-plist/ir/idtable"

	"github.com/scott-cotton/cli"
)

func stat(cfg *StatConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Stat.Parse(cc, args)
	if err != nil {
		return err
	}
	return forInputs(cc, args, func(in *input) error {
		return writeStat(cc.Out, in)
	})
}

func writeStat(w io.Writer, in *input) error {
	fields := [][2]any{
		{"file", in.name},
		{"format", in.format},
		{"size", len(in.data)},
		{"depth", in.node.Depth()},
	}
	if in.doc != nil {
		t := in.doc.Trailer()
		fields = append(fields,
			[2]any{"objects", t.NumObjects},
			[2]any{"root", t.RootObject},
			[2]any{"offset width", t.OffsetWidth},
			[2]any{"ref width", t.RefWidth},
			[2]any{"offset table", t.OffsetTable},
		)
	}
	// what a binary encoding of the tree would store
	fields = append(fields, [2]any{"distinct objects", idtable.Build(in.node).Len()})
	for _, f := range fields {
		if _, err := fmt.Fprintf(w, "%s: %v\n", f[0], f[1]); err != nil {
			return err
		}
	}
	return nil
}
