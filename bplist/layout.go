package bplist

import (
	"encoding/binary"
	"fmt"
)

const (
	// Magic opens every binary property list, followed by the version.
	Magic   = "bplist"
	Version = "00"

	headerSize  = len(Magic) + len(Version)
	TrailerSize = 32
)

// marker kinds, the high nibble of an object's first byte
const (
	kindSimple  = 0x0
	kindInt     = 0x1
	kindReal    = 0x2
	kindDate    = 0x3
	kindData    = 0x4
	kindASCII   = 0x5
	kindUnicode = 0x6
	kindUID     = 0x8
	kindArray   = 0xA
	kindDict    = 0xD
)

const (
	simpleFalse = 0x8
	simpleTrue  = 0x9

	// countFollows in the low nibble means the count is the integer
	// object that follows the marker.
	countFollows = 0xF
)

// Trailer is the fixed size footer of a binary property list.
type Trailer struct {
	SortVersion uint8
	// OffsetWidth is the width in bytes of offset table entries.
	OffsetWidth uint8
	// RefWidth is the width in bytes of object references.
	RefWidth    uint8
	NumObjects  uint64
	RootObject  uint64
	OffsetTable uint64
}

// AppendBinary appends the 32 byte encoding of t to b.
func (t *Trailer) AppendBinary(b []byte) ([]byte, error) {
	b = append(b, 0, 0, 0, 0, 0, t.SortVersion, t.OffsetWidth, t.RefWidth)
	b = binary.BigEndian.AppendUint64(b, t.NumObjects)
	b = binary.BigEndian.AppendUint64(b, t.RootObject)
	b = binary.BigEndian.AppendUint64(b, t.OffsetTable)
	return b, nil
}

// UnmarshalBinary reads t from exactly TrailerSize bytes without
// validating it against a document.
func (t *Trailer) UnmarshalBinary(d []byte) error {
	if len(d) != TrailerSize {
		return fmt.Errorf("trailer is %d bytes, want %d", len(d), TrailerSize)
	}
	t.SortVersion = d[5]
	t.OffsetWidth = d[6]
	t.RefWidth = d[7]
	t.NumObjects = binary.BigEndian.Uint64(d[8:])
	t.RootObject = binary.BigEndian.Uint64(d[16:])
	t.OffsetTable = binary.BigEndian.Uint64(d[24:])
	return nil
}

// widthExp returns n such that 1<<n == w for the integer widths of the
// format.
func widthExp(w int) byte {
	switch w {
	case 1:
		return 0
	case 2:
		return 1
	case 4:
		return 2
	case 8:
		return 3
	case 16:
		return 4
	}
	panic(fmt.Sprintf("bplist: bad integer width %d", w))
}

func readUint(d []byte) uint64 {
	var v uint64
	for _, c := range d {
		v = v<<8 | uint64(c)
	}
	return v
}

func appendUint(b []byte, v uint64, w int) []byte {
	for i := w - 1; i >= 0; i-- {
		b = append(b, byte(v>>(8*uint(i))))
	}
	return b
}
