package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/signadot/plist-format/go-plist/ascii"
	"github.com/signadot/plist-format/go-plist/ir"
	"github.com/signadot/plist-format/go-plist/ir/idtable"

	"github.com/scott-cotton/cli"
)

func ids(cfg *IDsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.IDs.Parse(cc, args)
	if err != nil {
		return err
	}
	opts, err := cfg.encOpts()
	if err != nil {
		return err
	}
	return forInputs(cc, args, func(in *input) error {
		return writeIDs(cc.Out, idtable.Build(in.node), cfg.Sort, opts)
	})
}

// writeIDs prints one line per object: its id, type and value.  Containers
// are shown with the ids of their elements.
func writeIDs(w io.Writer, tbl *idtable.Table, sorted bool, opts []ascii.EncodeOption) error {
	order := make([]int, tbl.Len())
	for i := range order {
		order[i] = i
	}
	if sorted {
		slices.SortStableFunc(order, func(a, b int) int {
			return ir.Compare(tbl.Node(a), tbl.Node(b))
		})
	}
	for _, id := range order {
		n := tbl.Node(id)
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\n", id, n.Type, idRendering(tbl, n, opts)); err != nil {
			return err
		}
	}
	return nil
}

func idRendering(tbl *idtable.Table, n *ir.Node, opts []ascii.EncodeOption) string {
	ref := func(v *ir.Node) string {
		id, _ := tbl.ID(v)
		return fmt.Sprintf("@%d", id)
	}
	switch n.Type {
	case ir.ArrayType:
		refs := make([]string, len(n.Values))
		for i, v := range n.Values {
			refs[i] = ref(v)
		}
		return "(" + strings.Join(refs, ", ") + ")"
	case ir.DictType:
		refs := make([]string, len(n.Values))
		for i, v := range n.Values {
			refs[i] = ref(n.Fields[i]) + " = " + ref(v) + ";"
		}
		return "{" + strings.Join(refs, " ") + "}"
	}
	return ascii.MustString(n, opts...)
}
