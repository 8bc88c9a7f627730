package bplist

import (
	"encoding/binary"
	"io"
	"math"
	"math/big"

	"github.com/signadot/plist-format/go-plist/debug"
	"github.com/signadot/plist-format/go-plist/ir"
)

// Document is a parsed binary property list whose objects are decoded on
// demand.  Objects are decoded at most once, so the trees returned share
// the nodes of objects referenced more than once.
type Document struct {
	data    []byte
	trailer Trailer
	offsets []uint64

	objects []*ir.Node
	state   []objState
}

type objState uint8

const (
	objNone objState = iota
	objBusy
	objDone
)

// Parse validates the header, trailer and offset table of d.  Objects are
// not examined until they are requested.  The Document refers to d, which
// must not be modified while it is in use.
func Parse(d []byte) (*Document, error) {
	if len(d) < len(Magic) || string(d[:len(Magic)]) != Magic {
		return nil, formatErr(ErrMagic, 0, "")
	}
	if len(d) < headerSize || string(d[len(Magic):headerSize]) != Version {
		return nil, formatErr(ErrVersion, uint64(len(Magic)), "%q", d[len(Magic):min(len(d), headerSize)])
	}
	if len(d) < headerSize+TrailerSize {
		return nil, formatErr(ErrTrailer, uint64(len(d)), "document is only %d bytes", len(d))
	}
	tlrAt := uint64(len(d) - TrailerSize)
	doc := &Document{data: d}
	t := &doc.trailer
	if err := t.UnmarshalBinary(d[tlrAt:]); err != nil {
		return nil, formatErr(ErrTrailer, tlrAt, "%s", err)
	}
	switch {
	case t.OffsetWidth < 1 || t.OffsetWidth > 8:
		return nil, formatErr(ErrTrailer, tlrAt, "offset width %d", t.OffsetWidth)
	case t.RefWidth < 1 || t.RefWidth > 8:
		return nil, formatErr(ErrTrailer, tlrAt, "reference width %d", t.RefWidth)
	case t.NumObjects == 0:
		return nil, formatErr(ErrTrailer, tlrAt, "no objects")
	case t.RootObject >= t.NumObjects:
		return nil, formatErr(ErrTrailer, tlrAt, "root object %d of %d", t.RootObject, t.NumObjects)
	case t.OffsetTable < uint64(headerSize) || t.OffsetTable >= tlrAt:
		return nil, formatErr(ErrTrailer, tlrAt, "offset table at %d", t.OffsetTable)
	case t.NumObjects > (tlrAt-t.OffsetTable)/uint64(t.OffsetWidth):
		return nil, formatErr(ErrTrailer, tlrAt, "%d offsets of width %d do not fit before the trailer",
			t.NumObjects, t.OffsetWidth)
	}

	w := uint64(t.OffsetWidth)
	doc.offsets = make([]uint64, t.NumObjects)
	for i := range doc.offsets {
		at := t.OffsetTable + uint64(i)*w
		off := readUint(d[at : at+w])
		if off < uint64(headerSize) || off >= t.OffsetTable {
			return nil, formatErr(ErrOffset, at, "object %d at %d", i, off)
		}
		doc.offsets[i] = off
	}
	doc.objects = make([]*ir.Node, t.NumObjects)
	doc.state = make([]objState, t.NumObjects)
	if debug.Decode() {
		debug.Logf("bplist: %d objects, root %d, ref width %d, offset width %d\n",
			t.NumObjects, t.RootObject, t.RefWidth, t.OffsetWidth)
	}
	return doc, nil
}

// Decode reads all of r and decodes its root object.
func Decode(r io.Reader) (*ir.Node, error) {
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return DecodeBytes(d)
}

// DecodeBytes decodes the root object of a binary property list.
func DecodeBytes(d []byte) (*ir.Node, error) {
	doc, err := Parse(d)
	if err != nil {
		return nil, err
	}
	return doc.Root()
}

func (doc *Document) Trailer() Trailer { return doc.trailer }

// Len returns the number of objects in the document.
func (doc *Document) Len() int { return len(doc.offsets) }

// Offset returns the position of object id from the start of the document.
func (doc *Document) Offset(id uint64) (uint64, error) {
	if id >= uint64(len(doc.offsets)) {
		return 0, formatErr(ErrRef, 0, "object %d of %d", id, len(doc.offsets))
	}
	return doc.offsets[id], nil
}

// Root decodes the object named by the trailer as the root.
func (doc *Document) Root() (*ir.Node, error) {
	return doc.Object(doc.trailer.RootObject)
}

// Object decodes object id and everything it references.
func (doc *Document) Object(id uint64) (*ir.Node, error) {
	if id >= uint64(len(doc.offsets)) {
		return nil, formatErr(ErrRef, 0, "object %d of %d", id, len(doc.offsets))
	}
	switch doc.state[id] {
	case objDone:
		return doc.objects[id], nil
	case objBusy:
		return nil, formatErr(ErrCycle, doc.offsets[id], "object %d refers to itself", id)
	}
	doc.state[id] = objBusy
	n, err := doc.object(doc.offsets[id])
	if err != nil {
		doc.state[id] = objNone
		return nil, err
	}
	doc.objects[id] = n
	doc.state[id] = objDone
	return n, nil
}

// span returns n bytes at off, which must end before the offset table.
func (doc *Document) span(off, n uint64) ([]byte, error) {
	end := doc.trailer.OffsetTable
	if off > end || n > end-off {
		return nil, formatErr(ErrTruncated, off, "need %d bytes", n)
	}
	return doc.data[off : off+n], nil
}

func (doc *Document) object(off uint64) (*ir.Node, error) {
	mb, err := doc.span(off, 1)
	if err != nil {
		return nil, err
	}
	m := mb[0]
	kind, low := m>>4, m&0xF
	at := off + 1
	switch kind {
	case kindSimple:
		switch low {
		case simpleFalse:
			return ir.FromBool(false), nil
		case simpleTrue:
			return ir.FromBool(true), nil
		}
		return nil, formatErr(ErrMarker, off, "0x%02x", m)

	case kindInt:
		i, _, err := doc.integer(off)
		if err != nil {
			return nil, err
		}
		return &ir.Node{Type: ir.IntegerType, Int: i}, nil

	case kindReal:
		switch low {
		case 2:
			p, err := doc.span(at, 4)
			if err != nil {
				return nil, err
			}
			return ir.FromReal(float64(math.Float32frombits(binary.BigEndian.Uint32(p)))), nil
		case 3:
			p, err := doc.span(at, 8)
			if err != nil {
				return nil, err
			}
			return ir.FromReal(math.Float64frombits(binary.BigEndian.Uint64(p))), nil
		}
		return nil, formatErr(ErrMarker, off, "real 0x%02x", m)

	case kindDate:
		if low != 3 {
			return nil, formatErr(ErrMarker, off, "date 0x%02x", m)
		}
		p, err := doc.span(at, 8)
		if err != nil {
			return nil, err
		}
		return ir.FromDate(math.Float64frombits(binary.BigEndian.Uint64(p))), nil

	case kindUID:
		w := uint64(low) + 1
		if w > 8 {
			return nil, formatErr(ErrMarker, off, "uid of %d bytes", w)
		}
		p, err := doc.span(at, w)
		if err != nil {
			return nil, err
		}
		return ir.FromUID(readUint(p)), nil

	case kindData, kindASCII, kindUnicode, kindArray, kindDict:
		return doc.sized(off, kind, low)
	}
	return nil, formatErr(ErrMarker, off, "0x%02x", m)
}

// integer reads the integer object at off, returning it and the offset
// following it.
func (doc *Document) integer(off uint64) (*big.Int, uint64, error) {
	mb, err := doc.span(off, 1)
	if err != nil {
		return nil, 0, err
	}
	if mb[0]>>4 != kindInt || mb[0]&0xF > 4 {
		return nil, 0, formatErr(ErrMarker, off, "integer 0x%02x", mb[0])
	}
	w := uint64(1) << (mb[0] & 0xF)
	p, err := doc.span(off+1, w)
	if err != nil {
		return nil, 0, err
	}
	var i *big.Int
	switch w {
	case 1, 2, 4:
		i = new(big.Int).SetUint64(readUint(p))
	case 8:
		i = big.NewInt(int64(readUint(p)))
	default:
		i = new(big.Int).SetBytes(p)
		if p[0]&0x80 != 0 {
			i.Sub(i, two128)
		}
	}
	return i, off + 1 + w, nil
}

// sized decodes the objects whose marker carries a count.
func (doc *Document) sized(off uint64, kind, low byte) (*ir.Node, error) {
	count := uint64(low)
	at := off + 1
	if low == countFollows {
		i, next, err := doc.integer(at)
		if err != nil {
			return nil, err
		}
		if i.Sign() < 0 || !i.IsUint64() {
			return nil, formatErr(ErrPayload, at, "count %s", i)
		}
		count, at = i.Uint64(), next
	}

	var unit uint64
	switch kind {
	case kindData, kindASCII:
		unit = 1
	case kindUnicode:
		unit = 2
	case kindArray:
		unit = uint64(doc.trailer.RefWidth)
	case kindDict:
		unit = 2 * uint64(doc.trailer.RefWidth)
	}
	if count > math.MaxUint64/unit {
		return nil, formatErr(ErrTruncated, at, "count %d", count)
	}
	p, err := doc.span(at, count*unit)
	if err != nil {
		return nil, err
	}

	switch kind {
	case kindData:
		return ir.FromData(p), nil
	case kindASCII:
		for i, c := range p {
			if c >= 0x80 {
				return nil, formatErr(ErrPayload, at+uint64(i), "byte 0x%02x in ascii string", c)
			}
		}
		return ir.FromString(string(p)), nil
	case kindUnicode:
		s, err := utf16be.NewDecoder().Bytes(p)
		if err != nil {
			return nil, formatErr(ErrPayload, at, "%s", err)
		}
		return ir.FromString(string(s)), nil
	case kindArray:
		res := &ir.Node{Type: ir.ArrayType, Values: make([]*ir.Node, count)}
		if err := doc.refs(p, at, res.Values); err != nil {
			return nil, err
		}
		return res, nil
	}

	res := &ir.Node{
		Type:   ir.DictType,
		Fields: make([]*ir.Node, count),
		Values: make([]*ir.Node, count),
	}
	half := count * uint64(doc.trailer.RefWidth)
	if err := doc.refs(p[:half], at, res.Fields); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, count)
	for i, k := range res.Fields {
		if k.Type != ir.StringType {
			return nil, formatErr(ErrKey, at, "key %d is %s", i, k.Type)
		}
		if seen[k.String] {
			return nil, formatErr(ErrKey, at, "duplicate key %q", k.String)
		}
		seen[k.String] = true
	}
	if err := doc.refs(p[half:], at+half, res.Values); err != nil {
		return nil, err
	}
	return res, nil
}

func (doc *Document) refs(p []byte, at uint64, dst []*ir.Node) error {
	w := uint64(doc.trailer.RefWidth)
	for i := range dst {
		ref := readUint(p[uint64(i)*w : uint64(i+1)*w])
		if ref >= uint64(len(doc.offsets)) {
			return formatErr(ErrRef, at+uint64(i)*w, "object %d of %d", ref, len(doc.offsets))
		}
		n, err := doc.Object(ref)
		if err != nil {
			return err
		}
		dst[i] = n
	}
	return nil
}
