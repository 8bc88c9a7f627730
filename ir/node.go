package ir

import (
	"fmt"
	"maps"
	"math"
	"math/big"
	"slices"
	"time"
)

// Node is a single property list value.  Type selects which of the value
// fields is meaningful.
type Node struct {
	Type Type

	// Fields holds the String typed keys of a DictType node, Fields[i] being
	// the key of Values[i].
	Fields []*Node
	Values []*Node

	String string
	Bool   bool
	Int    *big.Int
	// Float holds a RealType value, or for DateType the seconds since Epoch.
	Float float64
	Data  []byte
	UID   uint64
}

// Epoch is the reference date of DateType values.
var Epoch = time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)

var (
	minInt128 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
	maxInt128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
)

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromInt(v int64) *Node {
	return &Node{Type: IntegerType, Int: big.NewInt(v)}
}

func FromUint(v uint64) *Node {
	return &Node{Type: IntegerType, Int: new(big.Int).SetUint64(v)}
}

// FromBigInt returns an IntegerType node holding a copy of v.  v must fit in
// a signed 128 bit integer.
func FromBigInt(v *big.Int) (*Node, error) {
	if v == nil {
		return nil, ErrNilValue
	}
	if v.Cmp(minInt128) < 0 || v.Cmp(maxInt128) > 0 {
		return nil, fmt.Errorf("%w: %s does not fit in 128 bits", ErrRange, v)
	}
	return &Node{Type: IntegerType, Int: new(big.Int).Set(v)}, nil
}

func FromReal(f float64) *Node {
	return &Node{Type: RealType, Float: f}
}

// FromDate returns a DateType node secs seconds after Epoch.
func FromDate(secs float64) *Node {
	return &Node{Type: DateType, Float: secs}
}

func FromTime(t time.Time) *Node {
	d := t.Sub(Epoch)
	if d == math.MaxInt64 || d == math.MinInt64 {
		// beyond what a Duration holds, fall back to whole seconds
		return FromDate(float64(t.Unix()-Epoch.Unix()) + float64(t.Nanosecond())/1e9)
	}
	return FromDate(d.Seconds())
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func FromData(d []byte) *Node {
	return &Node{Type: DataType, Data: slices.Clone(d)}
}

func FromUID(v uint64) *Node {
	return &Node{Type: UIDType, UID: v}
}

func NewArray() *Node {
	return &Node{Type: ArrayType}
}

func NewDict() *Node {
	return &Node{Type: DictType}
}

// FromSlice returns an array of vs.  It panics if any element is nil.
func FromSlice(vs []*Node) *Node {
	res := &Node{Type: ArrayType, Values: make([]*Node, 0, len(vs))}
	if err := res.Append(vs...); err != nil {
		panic(err)
	}
	return res
}

// FromMap returns a dictionary of m with keys in sorted order.  It panics if
// any value is nil.
func FromMap(m map[string]*Node) *Node {
	res := &Node{Type: DictType}
	for _, k := range slices.Sorted(maps.Keys(m)) {
		if err := res.Put(k, m[k]); err != nil {
			panic(err)
		}
	}
	return res
}

type KeyVal struct {
	Key string
	Val *Node
}

// FromKeyVals returns a dictionary with the entries of kvs in order.  It
// panics on a nil value or a repeated key.
func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{Type: DictType}
	for i := range kvs {
		if err := res.Put(kvs[i].Key, kvs[i].Val); err != nil {
			panic(err)
		}
	}
	return res
}

// Append adds vs to the end of an array.  Nothing is appended if any
// element of vs is nil.
func (y *Node) Append(vs ...*Node) error {
	if y.Type != ArrayType {
		return fmt.Errorf("%w: cannot append to %s", ErrNotContainer, y.Type)
	}
	for i, v := range vs {
		if v == nil {
			return fmt.Errorf("%w: element %d", ErrNilValue, i)
		}
	}
	y.Values = append(y.Values, vs...)
	return nil
}

// Put adds the entry key=v to a dictionary.
func (y *Node) Put(key string, v *Node) error {
	if y.Type != DictType {
		return fmt.Errorf("%w: cannot put %q into %s", ErrNotContainer, key, y.Type)
	}
	if v == nil {
		return fmt.Errorf("%w: key %q", ErrNilValue, key)
	}
	if y.Get(key) != nil {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, key)
	}
	y.Fields = append(y.Fields, FromString(key))
	y.Values = append(y.Values, v)
	return nil
}

// Get returns the value under key in a dictionary, or nil.
func (y *Node) Get(key string) *Node {
	for i, f := range y.Fields {
		if f.String == key {
			return y.Values[i]
		}
	}
	return nil
}

func (y *Node) Keys() []string {
	res := make([]string, len(y.Fields))
	for i, f := range y.Fields {
		res[i] = f.String
	}
	return res
}

// Len returns the number of elements of an array or entries of a dictionary,
// the number of bytes of data and 0 otherwise.
func (y *Node) Len() int {
	switch y.Type {
	case ArrayType, DictType:
		return len(y.Values)
	case DataType:
		return len(y.Data)
	default:
		return 0
	}
}

// BigInt returns the integer value, treating a missing Int as zero.
func (y *Node) BigInt() *big.Int {
	if y.Int == nil {
		return new(big.Int)
	}
	return y.Int
}

// Time returns the date in UTC.  Dates beyond the range of a time.Duration
// from Epoch are built from whole seconds so they do not wrap.
func (y *Node) Time() time.Time {
	whole, frac := math.Modf(y.Float)
	return time.Unix(Epoch.Unix()+int64(whole), int64(frac*1e9)).UTC()
}

// IsASCII reports whether a string holds only 7 bit characters.
func (y *Node) IsASCII() bool {
	for i := 0; i < len(y.String); i++ {
		if y.String[i] >= 0x80 {
			return false
		}
	}
	return true
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Type = y.Type
	dst.String = y.String
	dst.Bool = y.Bool
	dst.Float = y.Float
	dst.UID = y.UID
	dst.Int = nil
	if y.Int != nil {
		dst.Int = new(big.Int).Set(y.Int)
	}
	dst.Data = slices.Clone(y.Data)
	dst.Fields = nil
	dst.Values = nil
	if y.Fields != nil {
		dst.Fields = make([]*Node, len(y.Fields))
		for i, f := range y.Fields {
			dst.Fields[i] = f.Clone()
		}
	}
	if y.Values != nil {
		dst.Values = make([]*Node, len(y.Values))
		for i, v := range y.Values {
			dst.Values[i] = v.Clone()
		}
	}
	return dst
}

// Visit walks y depth first, calling f before (isPost false) and after
// (isPost true) the children.  Dictionary keys are visited before the
// values.  Children are skipped when the pre call returns false.
func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yy := range y.Fields {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
		for _, yy := range y.Values {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}

// Depth returns the nesting depth of y, 1 for a leaf.
func (y *Node) Depth() int {
	res := 0
	for _, v := range y.Values {
		res = max(res, v.Depth())
	}
	return res + 1
}
