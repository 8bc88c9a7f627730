// Package ir provides the in memory representation of property list documents.
//
// # Overview
//
// Every property list, whatever the dialect it was read from or will be
// written to, is represented as a tree of *ir.Node.  A Node is a tagged
// union: the Type field says which of the value fields is meaningful.
//
// # Node Types
//
//   - BoolType: Bool
//   - IntegerType: Int, a signed integer of up to 128 bits
//   - RealType: Float
//   - DateType: Float, seconds since Epoch (2001-01-01 00:00:00 UTC)
//   - StringType: String
//   - DataType: Data
//   - UIDType: UID, a keyed archive object reference.  A UID never equals
//     an Integer, even when numerically equal.
//   - ArrayType: Values
//   - DictType: Fields (String typed keys) and Values
//
// # Creating Nodes
//
//	dict := ir.FromKeyVals([]ir.KeyVal{
//	    {Key: "name", Val: ir.FromString("alice")},
//	    {Key: "tags", Val: ir.FromSlice([]*ir.Node{ir.FromInt(1)})},
//	})
//	if err := dict.Put("age", ir.FromInt(30)); err != nil {
//	    // duplicate key or nil value
//	}
//
// Nil values are rejected when they are added, not when the tree is
// serialized.
//
// # Dictionaries
//
// For DictType nodes, Fields[i] is the key for the value at Values[i].  Keys
// are unique.  Insertion order is kept so that documents round trip, but it is
// not significant for Equal, Hash or Compare.
//
// # Equality and Hashing
//
// Equal is a deep structural comparison.  Hash agrees with it, which is what
// the binary encoder relies on to store equal values once:
//
//	ir.Equal(a, b) // implies a.Hash() == b.Hash()
//
// Compare extends Equal to a total order.  All three recurse once per level
// of nesting.  Reals and dates equal only when their signs of zero agree, so
// 0 and -0 remain distinct objects.
//
// # Sharing
//
// Trees must not contain cycles.  Decoders may return trees in which equal
// subtrees are the same *Node; treat decoded trees as immutable or Clone
// them first.
//
// # JSON Interoperability
//
// Nodes marshal to and from a lossless JSON form:
//
//	d, err := ir.ToJSON(node)
//	node, err := ir.FromJSON(d)
//
// # Related Packages
//
//   - github.com/signadot/plist-format/go-plist/ir/idtable - object identity assignment
//   - github.com/signadot/plist-format/go-plist/bplist - binary encoding
//   - github.com/signadot/plist-format/go-plist/ascii - OpenStep and GNUstep text
package ir
