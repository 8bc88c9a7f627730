package format

import (
	"bytes"
	"errors"
	"fmt"
)

type Format int

const (
	BinaryFormat Format = iota
	ASCIIFormat
	GNUstepFormat
	JSONFormat
)

var ErrBadFormat = errors.New("bad format")

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"b":        BinaryFormat,
		"binary":   BinaryFormat,
		"bplist":   BinaryFormat,
		"a":        ASCIIFormat,
		"ascii":    ASCIIFormat,
		"openstep": ASCIIFormat,
		"g":        GNUstepFormat,
		"gnustep":  GNUstepFormat,
		"j":        JSONFormat,
		"json":     JSONFormat,
	}[v]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case BinaryFormat:
		return []byte("binary"), nil
	case ASCIIFormat:
		return []byte("ascii"), nil
	case GNUstepFormat:
		return []byte("gnustep"), nil
	case JSONFormat:
		return []byte("json"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) IsBinary() bool { return f == BinaryFormat }

// IsText reports whether f is one of the legacy ASCII dialects.
func (f Format) IsText() bool { return f == ASCIIFormat || f == GNUstepFormat }

// AllFormats returns all supported formats in preference order.
func AllFormats() []Format {
	return []Format{BinaryFormat, ASCIIFormat, GNUstepFormat, JSONFormat}
}

// Detect guesses the format of a document from its first bytes.  Only the
// formats that can be read are recognized: a binary property list by its
// magic, and IR JSON by a leading object.
func Detect(d []byte) (Format, error) {
	if bytes.HasPrefix(d, []byte("bplist")) {
		return BinaryFormat, nil
	}
	t := bytes.TrimLeft(d, " \t\r\n")
	if len(t) > 0 && t[0] == '{' {
		return JSONFormat, nil
	}
	if len(t) == 0 {
		return 0, fmt.Errorf("%w: empty input", ErrBadFormat)
	}
	return 0, fmt.Errorf("%w: unrecognized input starting with %q", ErrBadFormat, t[:min(len(t), 8)])
}
