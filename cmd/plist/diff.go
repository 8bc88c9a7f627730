package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/signadot/plist-format/go-plist/ascii"
	"github.com/signadot/plist-format/go-plist/ir"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := readInput(cc, args[0])
	if err != nil {
		return err
	}
	b, err := readInput(cc, args[1])
	if err != nil {
		return err
	}
	if cfg.Reverse {
		a, b = b, a
	}
	opts, err := cfg.encOpts()
	if err != nil {
		return err
	}
	differs, err := diffNodes(cc.Out, a.node, b.node, opts, cfg.Color || isTerminal(cc.Out))
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// diffNodes writes a line diff of the text renderings of a and b, printing
// nothing when they are structurally equal.
func diffNodes(w io.Writer, a, b *ir.Node, opts []ascii.EncodeOption, colored bool) (bool, error) {
	if ir.Equal(a, b) {
		return false, nil
	}
	ta, err := render(a, opts)
	if err != nil {
		return false, err
	}
	tb, err := render(b, opts)
	if err != nil {
		return false, err
	}
	dmp := diffpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(ta, tb)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	del, ins := fmt.Sprint, fmt.Sprint
	if colored {
		red, green := color.New(color.FgRed), color.New(color.FgGreen)
		red.EnableColor()
		green.EnableColor()
		del, ins = red.Sprint, green.Sprint
	}
	var buf bytes.Buffer
	for _, d := range diffs {
		prefix, paint := "  ", fmt.Sprint
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix, paint = "- ", del
		case diffpatch.DiffInsert:
			prefix, paint = "+ ", ins
		}
		for _, ln := range strings.SplitAfter(d.Text, "\n") {
			if ln == "" {
				continue
			}
			buf.WriteString(paint(prefix + strings.TrimSuffix(ln, "\n")))
			buf.WriteByte('\n')
		}
	}
	_, err = w.Write(buf.Bytes())
	return true, err
}

func render(n *ir.Node, opts []ascii.EncodeOption) (string, error) {
	var buf strings.Builder
	if err := ascii.Encode(n, &buf, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}
