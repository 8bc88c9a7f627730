package idtable

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/plist-format/go-plist/ir"
)

func describe(t *Table) []string {
	res := make([]string, t.Len())
	for i, n := range t.Nodes() {
		res[i] = n.Type.String() + ":" + n.String
	}
	return res
}

func TestDuplicateValuesShareID(t *testing.T) {
	root := ir.FromKeyVals([]ir.KeyVal{
		{Key: "a", Val: ir.FromString("dup")},
		{Key: "b", Val: ir.FromString("dup")},
	})
	tbl := Build(root)
	want := []string{"Dict:", "String:a", "String:b", "String:dup"}
	if diff := cmp.Diff(want, describe(tbl)); diff != "" {
		t.Fatalf("table mismatch (-want +got):\n%s", diff)
	}
	ida, _ := tbl.ID(root.Values[0])
	idb, _ := tbl.ID(root.Values[1])
	if ida != 3 || idb != 3 {
		t.Errorf("ids %d %d, want 3 3", ida, idb)
	}
}

func TestContainerBeforeChildren(t *testing.T) {
	root := ir.FromSlice([]*ir.Node{
		ir.FromString("x"),
		ir.FromKeyVals([]ir.KeyVal{
			{Key: "k", Val: ir.FromSlice([]*ir.Node{ir.FromString("y")})},
		}),
		ir.FromString("z"),
	})
	tbl := Build(root)
	want := []string{"Array:", "String:x", "Dict:", "String:k", "Array:", "String:y", "String:z"}
	if diff := cmp.Diff(want, describe(tbl)); diff != "" {
		t.Fatalf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestKeysShareIDsWithValues(t *testing.T) {
	root := ir.FromKeyVals([]ir.KeyVal{
		{Key: "name", Val: ir.FromString("name")},
	})
	tbl := Build(root)
	if tbl.Len() != 2 {
		t.Fatalf("len %d, want 2", tbl.Len())
	}
	kid, _ := tbl.ID(root.Fields[0])
	vid, _ := tbl.ID(root.Values[0])
	if kid != vid {
		t.Errorf("key id %d != value id %d", kid, vid)
	}
}

func TestEqualContainersCollapse(t *testing.T) {
	mk := func() *ir.Node {
		return ir.FromKeyVals([]ir.KeyVal{
			{Key: "p", Val: ir.FromInt(1)},
			{Key: "q", Val: ir.FromData([]byte{1})},
		})
	}
	other := ir.FromKeyVals([]ir.KeyVal{
		{Key: "q", Val: ir.FromData([]byte{1})},
		{Key: "p", Val: ir.FromInt(1)},
	})
	root := ir.FromSlice([]*ir.Node{mk(), mk(), other})
	tbl := Build(root)
	// array, dict, p, q, 1, <01>
	if tbl.Len() != 6 {
		t.Fatalf("len %d, want 6: %v", tbl.Len(), describe(tbl))
	}
	for i, v := range root.Values {
		id, ok := tbl.ID(v)
		if !ok || id != 1 {
			t.Errorf("element %d has id %d (%v), want 1", i, id, ok)
		}
	}
	// children of collapsed containers resolve structurally
	if id, ok := tbl.ID(root.Values[2].Values[0]); !ok || tbl.Node(id).Type != ir.DataType {
		t.Errorf("collapsed child id %d %v", id, ok)
	}
}

func TestDistinctTypesDoNotCollapse(t *testing.T) {
	root := ir.FromSlice([]*ir.Node{
		ir.FromInt(1), ir.FromUID(1), ir.FromReal(1), ir.FromDate(1), ir.FromBool(true),
		ir.FromInt(1), ir.FromUID(1),
	})
	tbl := Build(root)
	if tbl.Len() != 6 {
		t.Errorf("len %d, want 6", tbl.Len())
	}
}

func TestSharedPointer(t *testing.T) {
	s := ir.FromString("same")
	root := ir.FromSlice([]*ir.Node{s, s, ir.NewArray(), ir.NewArray()})
	tbl := Build(root)
	if tbl.Len() != 3 {
		t.Errorf("len %d, want 3", tbl.Len())
	}
	if _, ok := tbl.ID(ir.FromString("absent")); ok {
		t.Error("found id for a node not in the tree")
	}
}

func TestRefWidth(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{1, 1}, {256, 1}, {257, 2}, {65536, 2}, {65537, 4},
	}
	for _, tt := range tests {
		tbl := &Table{nodes: make([]*ir.Node, tt.n)}
		if got := tbl.RefWidth(); got != tt.want {
			t.Errorf("RefWidth(%d objects) = %d, want %d", tt.n, got, tt.want)
		}
	}
	if UintWidth(1<<32) != 8 {
		t.Error("UintWidth(1<<32) != 8")
	}
}

func TestDeepChain(t *testing.T) {
	const depth = 20000
	root := ir.FromString("leaf")
	for range depth {
		root = ir.FromSlice([]*ir.Node{root})
	}
	tbl := Build(root)
	if tbl.Len() != depth+1 {
		t.Fatalf("got %d objects, want %d", tbl.Len(), depth+1)
	}
	if id, ok := tbl.ID(ir.FromString("leaf")); !ok || id != depth {
		t.Errorf("leaf id %d, %t", id, ok)
	}
}
