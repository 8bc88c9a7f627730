package ir

import (
	"bytes"
	"cmp"
	"math"
	"slices"
	"strings"
)

// Compare returns an integer comparing two nodes.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
// Compare(a, b) == 0 exactly when Equal(a, b).
func Compare(a, b *Node) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	if a.Type != b.Type {
		return cmp.Compare(rank(a.Type), rank(b.Type))
	}

	switch a.Type {
	case BoolType:
		if a.Bool == b.Bool {
			return 0
		}
		if !a.Bool {
			return -1
		}
		return 1
	case IntegerType:
		return a.BigInt().Cmp(b.BigInt())
	case RealType, DateType:
		// cmp.Compare orders NaN first and treats NaNs as equal
		if c := cmp.Compare(a.Float, b.Float); c != 0 || a.Float != 0 {
			return c
		}
		// -0 before 0
		return cmp.Compare(signbit(b.Float), signbit(a.Float))
	case StringType:
		return strings.Compare(a.String, b.String)
	case DataType:
		return bytes.Compare(a.Data, b.Data)
	case UIDType:
		return cmp.Compare(a.UID, b.UID)
	case ArrayType:
		return compareArrays(a, b)
	case DictType:
		return compareDicts(a, b)
	}
	return 0
}

// rank returns the sorting rank of a type.
// Order: Bool < Integer < Real < Date < String < Data < UID < Array < Dict
func rank(t Type) int {
	switch t {
	case BoolType:
		return 0
	case IntegerType:
		return 1
	case RealType:
		return 2
	case DateType:
		return 3
	case StringType:
		return 4
	case DataType:
		return 5
	case UIDType:
		return 6
	case ArrayType:
		return 7
	case DictType:
		return 8
	}
	return 100
}

func compareArrays(a, b *Node) int {
	lenA := len(a.Values)
	lenB := len(b.Values)
	minLen := min(lenA, lenB)

	for i := 0; i < minLen; i++ {
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}

// compareDicts compares entries in key order so that insertion order does not
// matter.
func compareDicts(a, b *Node) int {
	ka := a.Keys()
	kb := b.Keys()
	slices.Sort(ka)
	slices.Sort(kb)
	minLen := min(len(ka), len(kb))

	for i := 0; i < minLen; i++ {
		if c := strings.Compare(ka[i], kb[i]); c != 0 {
			return c
		}
		if c := Compare(a.Get(ka[i]), b.Get(kb[i])); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(ka), len(kb))
}

func signbit(f float64) int {
	if math.Signbit(f) {
		return 1
	}
	return 0
}
