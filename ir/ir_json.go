package ir

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/goccy/go-json"
)

type irBase struct {
	Type   Type    `json:"type"`
	Fields []*Node `json:"fields,omitempty"`
	Values []*Node `json:"values,omitempty"`
}

// reals and integers travel as strings so that NaN, infinities and 128 bit
// integers survive.
type irJSON struct {
	irBase
	String *string `json:"string,omitempty"`
	Bool   *bool   `json:"bool,omitempty"`
	Int    string  `json:"int,omitempty"`
	Float  string  `json:"float,omitempty"`
	Data   []byte  `json:"data,omitempty"`
	UID    *uint64 `json:"uid,omitempty"`
}

func (y *Node) MarshalJSON() ([]byte, error) {
	c := &irJSON{irBase: irBase{Type: y.Type}}
	switch y.Type {
	case ArrayType:
		c.Values = y.Values
		if c.Values == nil {
			c.Values = []*Node{}
		}
	case DictType:
		c.Fields = y.Fields
		c.Values = y.Values
	case StringType:
		c.String = &y.String
	case BoolType:
		c.Bool = &y.Bool
	case IntegerType:
		c.Int = y.BigInt().String()
	case RealType, DateType:
		c.Float = strconv.FormatFloat(y.Float, 'g', -1, 64)
	case DataType:
		c.Data = y.Data
		if c.Data == nil {
			c.Data = []byte{}
		}
	case UIDType:
		c.UID = &y.UID
	default:
		return nil, fmt.Errorf("cannot marshal %s", y.Type)
	}
	return json.Marshal(c)
}

func (y *Node) UnmarshalJSON(d []byte) error {
	tmp := &irJSON{}
	if err := json.Unmarshal(d, tmp); err != nil {
		return err
	}
	*y = Node{Type: tmp.Type}
	switch y.Type {
	case ArrayType:
		for i, v := range tmp.Values {
			if v == nil {
				return fmt.Errorf("%w: array element %d", ErrNilValue, i)
			}
		}
		y.Values = tmp.Values
	case DictType:
		if len(tmp.Fields) != len(tmp.Values) {
			return fmt.Errorf("dict with %d fields and %d values", len(tmp.Fields), len(tmp.Values))
		}
		for i, f := range tmp.Fields {
			if f == nil || f.Type != StringType {
				return fmt.Errorf("invalid dict key at %d", i)
			}
			if err := y.Put(f.String, tmp.Values[i]); err != nil {
				return err
			}
		}
	case StringType:
		if tmp.String != nil {
			y.String = *tmp.String
		}
	case BoolType:
		if tmp.Bool != nil {
			y.Bool = *tmp.Bool
		}
	case IntegerType:
		i, ok := new(big.Int).SetString(tmp.Int, 10)
		if !ok {
			return fmt.Errorf("invalid integer %q", tmp.Int)
		}
		n, err := FromBigInt(i)
		if err != nil {
			return err
		}
		*y = *n
	case RealType, DateType:
		f, err := strconv.ParseFloat(tmp.Float, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", y.Type, tmp.Float, err)
		}
		y.Float = f
	case DataType:
		y.Data = tmp.Data
	case UIDType:
		if tmp.UID != nil {
			y.UID = *tmp.UID
		}
	}
	return nil
}

// ToJSON returns the IR JSON form of node.
func ToJSON(node *Node) ([]byte, error) {
	return json.Marshal(node)
}

// FromJSON reads a node from its IR JSON form.
func FromJSON(d []byte) (*Node, error) {
	res := &Node{}
	if err := json.Unmarshal(d, res); err != nil {
		return nil, err
	}
	return res, nil
}
