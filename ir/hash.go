package ir

import (
	"bytes"
	"encoding/binary"
	"hash/maphash"
	"math"
)

// seed is shared so hashes agree within a process.
var seed = maphash.MakeSeed()

// Equal reports whether a and b are structurally equal.  Dictionaries are
// compared as key sets regardless of entry order.  Reals and dates compare
// numerically, except that NaN equals NaN and -0 differs from 0 so that a
// binary encoding keeps both.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.Type != b.Type {
		return false
	}
	switch a.Type {
	case BoolType:
		return a.Bool == b.Bool
	case IntegerType:
		return a.BigInt().Cmp(b.BigInt()) == 0
	case RealType, DateType:
		return floatBits(a.Float) == floatBits(b.Float)
	case StringType:
		return a.String == b.String
	case DataType:
		return bytes.Equal(a.Data, b.Data)
	case UIDType:
		return a.UID == b.UID
	case ArrayType:
		if len(a.Values) != len(b.Values) {
			return false
		}
		for i := range a.Values {
			if !Equal(a.Values[i], b.Values[i]) {
				return false
			}
		}
		return true
	case DictType:
		if len(a.Values) != len(b.Values) {
			return false
		}
		for i, f := range a.Fields {
			bv := b.Get(f.String)
			if bv == nil || !Equal(a.Values[i], bv) {
				return false
			}
		}
		return true
	}
	return false
}

// Hash returns a 64-bit hash of the node agreeing with Equal: structurally
// equal nodes hash identically.
// It panics if n is nil.
func (n *Node) Hash() uint64 {
	return n.HashWith((*Node).Hash)
}

// HashWith is Hash with the hashes of n's direct children taken from child,
// so a caller hashing every node of a tree can reuse each result.
// It panics if n is nil.
func (n *Node) HashWith(child func(*Node) uint64) uint64 {
	if n == nil {
		panic("ir: Hash called on nil node")
	}
	var h maphash.Hash
	h.SetSeed(seed)
	h.WriteByte(byte(n.Type))

	var b [8]byte
	switch n.Type {
	case BoolType:
		if n.Bool {
			h.WriteByte(1)
		} else {
			h.WriteByte(0)
		}
	case IntegerType:
		i := n.BigInt()
		h.WriteByte(byte(i.Sign() + 1))
		h.Write(i.Bytes())
	case RealType, DateType:
		binary.LittleEndian.PutUint64(b[:], floatBits(n.Float))
		h.Write(b[:])
	case StringType:
		h.WriteString(n.String)
	case DataType:
		h.Write(n.Data)
	case UIDType:
		binary.LittleEndian.PutUint64(b[:], n.UID)
		h.Write(b[:])
	case ArrayType:
		for _, v := range n.Values {
			binary.LittleEndian.PutUint64(b[:], child(v))
			h.Write(b[:])
		}
	case DictType:
		// entries are summed so that order does not matter
		var sum uint64
		for i, f := range n.Fields {
			var eh maphash.Hash
			eh.SetSeed(seed)
			binary.LittleEndian.PutUint64(b[:], child(f))
			eh.Write(b[:])
			binary.LittleEndian.PutUint64(b[:], child(n.Values[i]))
			eh.Write(b[:])
			sum += eh.Sum64()
		}
		binary.LittleEndian.PutUint64(b[:], uint64(len(n.Values)))
		h.Write(b[:])
		binary.LittleEndian.PutUint64(b[:], sum)
		h.Write(b[:])
	}
	return h.Sum64()
}

// floatBits maps every NaN to one pattern.
func floatBits(f float64) uint64 {
	if math.IsNaN(f) {
		return math.Float64bits(math.NaN())
	}
	return math.Float64bits(f)
}
