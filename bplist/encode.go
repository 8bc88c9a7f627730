package bplist

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"math/big"

	"github.com/signadot/plist-format/go-plist/debug"
	"github.com/signadot/plist-format/go-plist/ir"
	"github.com/signadot/plist-format/go-plist/ir/idtable"

	"golang.org/x/text/encoding/unicode"
)

var utf16be = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

type encState struct {
	w        *bufio.Writer
	tbl      *idtable.Table
	refWidth int
	off      uint64
	buf      []byte
	err      error
}

// Encode writes node to w as a binary property list.  Structurally equal
// values are written once.  On error, whatever was written to w is not a
// valid document.
func Encode(node *ir.Node, w io.Writer) error {
	if node == nil {
		return fmt.Errorf("%w: %w", errEncoding, ir.ErrNilValue)
	}
	tbl := idtable.Build(node)
	es := &encState{
		w:        bufio.NewWriter(w),
		tbl:      tbl,
		refWidth: tbl.RefWidth(),
	}
	es.writeString(Magic + Version)

	offsets := make([]uint64, tbl.Len())
	for id, n := range tbl.Nodes() {
		offsets[id] = es.off
		if err := es.object(n); err != nil {
			return err
		}
	}
	tableAt := es.off
	offWidth := idtable.UintWidth(offsets[len(offsets)-1])
	for _, off := range offsets {
		es.uint(off, offWidth)
	}
	trailer := &Trailer{
		OffsetWidth: uint8(offWidth),
		RefWidth:    uint8(es.refWidth),
		NumObjects:  uint64(tbl.Len()),
		RootObject:  0,
		OffsetTable: tableAt,
	}
	es.buf, _ = trailer.AppendBinary(es.buf[:0])
	es.write(es.buf)
	if debug.Binary() {
		debug.Logf("bplist: %d objects, ref width %d, offset width %d, %d bytes\n",
			tbl.Len(), es.refWidth, offWidth, es.off)
	}
	if es.err != nil {
		return es.err
	}
	return es.w.Flush()
}

// EncodeBytes returns the binary encoding of node.
func EncodeBytes(node *ir.Node) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (es *encState) write(d []byte) {
	if es.err != nil {
		return
	}
	n, err := es.w.Write(d)
	es.off += uint64(n)
	es.err = err
}

func (es *encState) writeString(s string) {
	if es.err != nil {
		return
	}
	n, err := es.w.WriteString(s)
	es.off += uint64(n)
	es.err = err
}

func (es *encState) writeByte(c byte) {
	if es.err != nil {
		return
	}
	es.err = es.w.WriteByte(c)
	if es.err == nil {
		es.off++
	}
}

func (es *encState) uint(v uint64, w int) {
	es.buf = appendUint(es.buf[:0], v, w)
	es.write(es.buf)
}

func (es *encState) object(n *ir.Node) error {
	switch n.Type {
	case ir.BoolType:
		if n.Bool {
			es.writeByte(kindSimple<<4 | simpleTrue)
		} else {
			es.writeByte(kindSimple<<4 | simpleFalse)
		}
	case ir.IntegerType:
		i := n.BigInt()
		if !fits128(i) {
			return fmt.Errorf("%w: integer %s does not fit in 128 bits", errEncoding, i)
		}
		es.integer(i)
	case ir.RealType:
		if f32 := float32(n.Float); float64(f32) == n.Float {
			es.writeByte(kindReal<<4 | 2)
			es.buf = binary.BigEndian.AppendUint32(es.buf[:0], math.Float32bits(f32))
		} else {
			es.writeByte(kindReal<<4 | 3)
			es.buf = binary.BigEndian.AppendUint64(es.buf[:0], math.Float64bits(n.Float))
		}
		es.write(es.buf)
	case ir.DateType:
		es.writeByte(kindDate<<4 | 3)
		es.buf = binary.BigEndian.AppendUint64(es.buf[:0], math.Float64bits(n.Float))
		es.write(es.buf)
	case ir.DataType:
		es.header(kindData, len(n.Data))
		es.write(n.Data)
	case ir.StringType:
		if n.IsASCII() {
			es.header(kindASCII, len(n.String))
			es.writeString(n.String)
			break
		}
		units, err := utf16be.NewEncoder().Bytes([]byte(n.String))
		if err != nil {
			return fmt.Errorf("%w: string %q: %w", errEncoding, n.String, err)
		}
		es.header(kindUnicode, len(units)/2)
		es.write(units)
	case ir.UIDType:
		w := idtable.UintWidth(n.UID)
		es.writeByte(kindUID<<4 | byte(w-1))
		es.uint(n.UID, w)
	case ir.ArrayType:
		es.header(kindArray, len(n.Values))
		for _, v := range n.Values {
			if err := es.ref(v); err != nil {
				return err
			}
		}
	case ir.DictType:
		es.header(kindDict, len(n.Values))
		for _, k := range n.Fields {
			if err := es.ref(k); err != nil {
				return err
			}
		}
		for _, v := range n.Values {
			if err := es.ref(v); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: unknown type %s", errEncoding, n.Type)
	}
	return es.err
}

// integer writes non-negative values of up to 32 bits unsigned in 1, 2 or 4
// bytes, other int64 values signed in 8 bytes and the rest in 16 bytes of
// two's complement.
func (es *encState) integer(i *big.Int) {
	switch {
	case i.Sign() >= 0 && i.IsUint64() && i.Uint64() <= math.MaxUint32:
		v := i.Uint64()
		w := idtable.UintWidth(v)
		es.writeByte(kindInt<<4 | widthExp(w))
		es.uint(v, w)
	case i.IsInt64():
		es.writeByte(kindInt<<4 | widthExp(8))
		es.uint(uint64(i.Int64()), 8)
	default:
		es.writeByte(kindInt<<4 | widthExp(16))
		v := i
		if i.Sign() < 0 {
			v = new(big.Int).Add(i, two128)
		}
		es.buf = v.FillBytes(make([]byte, 16))
		es.write(es.buf)
	}
}

var two128 = new(big.Int).Lsh(big.NewInt(1), 128)

func fits128(i *big.Int) bool {
	if i.Sign() >= 0 {
		return i.BitLen() <= 127
	}
	// -2^127 is the smallest, so -i-1 must fit in 127 bits
	return new(big.Int).Sub(new(big.Int).Neg(i), big.NewInt(1)).BitLen() <= 127
}

func (es *encState) header(kind byte, count int) {
	if count < countFollows {
		es.writeByte(kind<<4 | byte(count))
		return
	}
	es.writeByte(kind<<4 | countFollows)
	es.integer(new(big.Int).SetUint64(uint64(count)))
}

func (es *encState) ref(n *ir.Node) error {
	id, ok := es.tbl.ID(n)
	if !ok {
		return fmt.Errorf("%w: no object id for %s", errEncoding, n.Type)
	}
	es.uint(uint64(id), es.refWidth)
	return nil
}
