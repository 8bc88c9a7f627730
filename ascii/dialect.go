package ascii

import (
	"fmt"
)

// Dialect selects the flavour of legacy text property list.
type Dialect int

const (
	OpenStep Dialect = iota
	GNUstep
)

func ParseDialect(v string) (Dialect, error) {
	switch v {
	case "openstep", "o":
		return OpenStep, nil
	case "gnustep", "g":
		return GNUstep, nil
	}
	return 0, fmt.Errorf("%w: unknown dialect %q", ErrEncoding, v)
}

func (d Dialect) String() string {
	t, err := d.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(t)
}

func (d Dialect) MarshalText() ([]byte, error) {
	switch d {
	case OpenStep:
		return []byte("openstep"), nil
	case GNUstep:
		return []byte("gnustep"), nil
	}
	return nil, fmt.Errorf("<err: %d is not a dialect>", d)
}

func (d *Dialect) UnmarshalText(t []byte) error {
	pd, err := ParseDialect(string(t))
	if err != nil {
		return err
	}
	*d = pd
	return nil
}

// keepPacking reports whether another element may follow on the current
// line once it holds count characters.  OpenStep breaks as soon as the
// width is reached, GNUstep only once it is exceeded.
func (d Dialect) keepPacking(count, width int) bool {
	if d == GNUstep {
		return count <= width
	}
	return count < width
}
