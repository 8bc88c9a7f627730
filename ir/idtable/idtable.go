// Package idtable assigns object identifiers to the nodes of a property list
// tree, storing structurally equal nodes once.
//
// Identifiers are dense and start at 0 with the root.  They are assigned in
// depth first order: a container receives its identifier before its
// children, array elements are visited in order and dictionaries have all
// their keys visited before their values.
//
// Build, like ir.Equal and Node.Hash, recurses once per level of nesting.
package idtable

import (
	"github.com/signadot/plist-format/go-plist/debug"
	"github.com/signadot/plist-format/go-plist/ir"
)

// Table is the result of one identity assignment pass.  It is not safe to
// modify a tree while a Table built from it is in use.
type Table struct {
	nodes   []*ir.Node
	visited map[*ir.Node]int
	byHash  map[uint64][]int
	hashes  map[*ir.Node]uint64
}

// Build assigns identifiers to root and all nodes below it.
func Build(root *ir.Node) *Table {
	t := &Table{
		visited: map[*ir.Node]int{},
		byHash:  map[uint64][]int{},
		hashes:  map[*ir.Node]uint64{},
	}
	t.assign(root)
	t.hashes = nil
	if debug.IDs() {
		debug.Logf("idtable: %d distinct objects\n", len(t.nodes))
	}
	return t
}

func (t *Table) assign(n *ir.Node) {
	if _, ok := t.visited[n]; ok {
		return
	}
	h := t.hash(n)
	for _, id := range t.byHash[h] {
		if ir.Equal(t.nodes[id], n) {
			t.visited[n] = id
			if debug.IDs() {
				debug.Logf("idtable: %s reuses %d\n", n.Type, id)
			}
			// every node below n equals one already assigned
			return
		}
	}
	id := len(t.nodes)
	t.nodes = append(t.nodes, n)
	t.visited[n] = id
	t.byHash[h] = append(t.byHash[h], id)

	switch n.Type {
	case ir.ArrayType:
		for _, v := range n.Values {
			t.assign(v)
		}
	case ir.DictType:
		for _, k := range n.Fields {
			t.assign(k)
		}
		for _, v := range n.Values {
			t.assign(v)
		}
	}
}

// hash hashes each node of the tree once, children first.
func (t *Table) hash(n *ir.Node) uint64 {
	if h, ok := t.hashes[n]; ok {
		return h
	}
	h := n.HashWith(t.hash)
	t.hashes[n] = h
	return h
}

// Len returns the number of distinct objects.
func (t *Table) Len() int { return len(t.nodes) }

// Nodes returns the distinct objects in identifier order.
func (t *Table) Nodes() []*ir.Node { return t.nodes }

// Node returns the object with identifier id.
func (t *Table) Node(id int) *ir.Node { return t.nodes[id] }

// ID returns the identifier of a node visited by Build, or of any node
// structurally equal to one.
func (t *Table) ID(n *ir.Node) (int, bool) {
	if id, ok := t.visited[n]; ok {
		return id, true
	}
	for _, id := range t.byHash[n.Hash()] {
		if ir.Equal(t.nodes[id], n) {
			return id, true
		}
	}
	return 0, false
}

// RefWidth returns the number of bytes needed to reference the largest
// identifier: 1, 2, 4 or 8.
func (t *Table) RefWidth() int {
	return UintWidth(uint64(max(len(t.nodes)-1, 0)))
}

// UintWidth returns the smallest of 1, 2, 4 and 8 bytes holding v.
func UintWidth(v uint64) int {
	switch {
	case v <= 0xff:
		return 1
	case v <= 0xffff:
		return 2
	case v <= 0xffffffff:
		return 4
	default:
		return 8
	}
}
