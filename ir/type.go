package ir

import "fmt"

type Type int

const (
	BoolType Type = iota
	IntegerType
	RealType
	DateType
	StringType
	DataType
	UIDType
	ArrayType
	DictType
)

var typeNames = map[Type]string{
	BoolType:    "Bool",
	IntegerType: "Integer",
	RealType:    "Real",
	DateType:    "Date",
	StringType:  "String",
	DataType:    "Data",
	UIDType:     "UID",
	ArrayType:   "Array",
	DictType:    "Dict",
}

func (t Type) String() string {
	s, ok := typeNames[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	if _, ok := typeNames[t]; !ok {
		return nil, fmt.Errorf("unknown type %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	for tt, name := range typeNames {
		if name == string(d) {
			*t = tt
			return nil
		}
	}
	return fmt.Errorf("unrecognized type %q", d)
}
