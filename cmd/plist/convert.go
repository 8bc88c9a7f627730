package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/plist-format/go-plist/ascii"
	"github.com/signadot/plist-format/go-plist/bplist"
	"github.com/signadot/plist-format/go-plist/format"
	"github.com/signadot/plist-format/go-plist/ir"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

func convert(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.OutFormat == nil {
		return fmt.Errorf("%w: convert requires -O", cli.ErrUsage)
	}
	f := *cfg.OutFormat
	if f.IsBinary() && len(args) > 1 {
		return fmt.Errorf("%w: binary output takes one input, got %d", cli.ErrUsage, len(args))
	}
	if f.IsBinary() && isTerminal(cc.Out) {
		theLog.Warn("writing a binary property list to a terminal")
	}
	opts, err := cfg.encOpts()
	if err != nil {
		return err
	}
	return forInputs(cc, args, func(in *input) error {
		return encodeAs(cc.Out, in.node, f, opts)
	})
}

func encodeAs(w io.Writer, node *ir.Node, f format.Format, opts []ascii.EncodeOption) error {
	switch f {
	case format.BinaryFormat:
		return bplist.Encode(node, w)
	case format.ASCIIFormat, format.GNUstepFormat:
		return ascii.Encode(node, w, append(opts, ascii.EncodeFormat(f))...)
	case format.JSONFormat:
		d, err := ir.ToJSON(node)
		if err != nil {
			return err
		}
		_, err = w.Write(append(d, '\n'))
		return err
	}
	return fmt.Errorf("%w: cannot write %s", format.ErrBadFormat, f)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
