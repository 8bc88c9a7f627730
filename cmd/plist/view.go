package main

import (
	"github.com/signadot/plist-format/go-plist/ascii"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	opts, err := cfg.encOpts()
	if err != nil {
		return err
	}
	return forInputs(cc, args, func(in *input) error {
		return ascii.Encode(in.node, cc.Out, opts...)
	})
}
