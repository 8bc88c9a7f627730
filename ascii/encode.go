package ascii

import (
	"errors"
	"fmt"
	"io"
	"math/bits"
	"strconv"

	"github.com/signadot/plist-format/go-plist/debug"
	"github.com/signadot/plist-format/go-plist/ir"
	"github.com/signadot/plist-format/go-plist/lines"
)

var ErrEncoding = errors.New("encoding error")

const dateLayout = "2006-01-02 15:04:05 -0700"

type EncState struct {
	dialect Dialect
	width   int
	indent  string
	newline string
	typed   bool

	out *lines.Indenter
	err error
}

func newEncState(opts []EncodeOption) *EncState {
	es := &EncState{
		width:   80,
		indent:  "\t",
		newline: "\n",
	}
	for _, opt := range opts {
		opt(es)
	}
	return es
}

// Encode writes node to w followed by a line terminator.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := newEncState(opts)
	c := lines.NewCounter(w, es.newline)
	es.out = lines.NewIndenter(c, es.indent)
	if err := es.document(node); err != nil {
		return err
	}
	return c.Flush()
}

// Encoder writes a sequence of documents to one sink.
type Encoder struct {
	es *EncState
	c  *lines.Counter
}

func NewEncoder(w io.Writer, opts ...EncodeOption) *Encoder {
	es := newEncState(opts)
	c := lines.NewCounter(w, es.newline)
	es.out = lines.NewIndenter(c, es.indent)
	return &Encoder{es: es, c: c}
}

func (e *Encoder) Encode(node *ir.Node) error {
	e.es.err = nil
	return e.es.document(node)
}

// Close flushes and closes the sink, whether or not encoding succeeded.
func (e *Encoder) Close() error {
	return e.c.Close()
}

func (es *EncState) document(node *ir.Node) error {
	if err := es.encode(node); err != nil {
		return err
	}
	es.newLine()
	return es.err
}

func (es *EncState) write(s string) {
	if es.err != nil {
		return
	}
	_, es.err = es.out.WriteString(s)
}

func (es *EncState) newLine() {
	if es.err != nil {
		return
	}
	es.err = es.out.NewLine()
}

// brk ends the current line inside a packed array or data value, unless
// the dialect allows more on it.
func (es *EncState) brk() bool {
	n := es.out.LineLen()
	if es.dialect.keepPacking(n, es.width) {
		return false
	}
	if debug.Wrap() {
		debug.Logf("ascii: %s break at %d, width %d, depth %d\n", es.dialect, n, es.width, es.out.Depth())
	}
	es.newLine()
	return true
}

func (es *EncState) encode(node *ir.Node) error {
	if node == nil {
		return fmt.Errorf("%w: %w", ErrEncoding, ir.ErrNilValue)
	}
	switch node.Type {
	case ir.DictType:
		return es.dict(node)
	case ir.ArrayType:
		return es.array(node)
	case ir.DataType:
		return es.data(node.Data)
	case ir.StringType:
		es.write(Quote(node.String, es.dialect))
	case ir.BoolType:
		switch {
		case es.typedForms() && node.Bool:
			es.write("<*BY>")
		case es.typedForms():
			es.write("<*BN>")
		case node.Bool:
			es.write("YES")
		default:
			es.write("NO")
		}
	case ir.IntegerType:
		s := node.BigInt().String()
		if es.typedForms() {
			s = "<*I" + s + ">"
		}
		es.write(s)
	case ir.RealType:
		s := strconv.FormatFloat(node.Float, 'g', -1, 64)
		if es.typedForms() {
			s = "<*R" + s + ">"
		}
		es.write(s)
	case ir.DateType:
		s := node.Time().UTC().Format(dateLayout)
		if es.typedForms() {
			es.write("<*D" + s + ">")
		} else {
			es.write(`"` + s + `"`)
		}
	case ir.UIDType:
		nb := max((bits.Len64(node.UID)+7)/8, 1)
		es.write(fmt.Sprintf(`"%0*x"`, 2*nb, node.UID))
	default:
		return fmt.Errorf("%w: unknown type %s", ErrEncoding, node.Type)
	}
	return es.err
}

func (es *EncState) typedForms() bool {
	return es.typed && es.dialect == GNUstep
}

func isContainer(n *ir.Node) bool {
	switch n.Type {
	case ir.DictType, ir.ArrayType, ir.DataType:
		return true
	}
	return false
}

// startContainer puts a container on a line of its own.
func (es *EncState) startContainer() {
	if es.out.LineLen() != 0 {
		es.newLine()
	}
}

func (es *EncState) dict(node *ir.Node) error {
	es.startContainer()
	es.write("{")
	es.newLine()
	err := es.out.Nest(func() error {
		for i, k := range node.Fields {
			v := node.Values[i]
			if v == nil {
				return fmt.Errorf("%w: %w: key %q", ErrEncoding, ir.ErrNilValue, k.String)
			}
			es.write(Quote(k.String, es.dialect))
			if isContainer(v) {
				es.write(" =")
				es.newLine()
				if err := es.out.Nest(func() error { return es.encode(v) }); err != nil {
					return err
				}
			} else {
				es.write(" = ")
				if err := es.encode(v); err != nil {
					return err
				}
			}
			es.write(";")
			es.newLine()
		}
		return es.err
	})
	if err != nil {
		return err
	}
	es.write("}")
	return es.err
}

func (es *EncState) array(node *ir.Node) error {
	es.startContainer()
	es.write("(")
	last := len(node.Values) - 1
	err := es.out.Nest(func() error {
		for i, v := range node.Values {
			if v == nil {
				return fmt.Errorf("%w: %w: element %d", ErrEncoding, ir.ErrNilValue, i)
			}
			if isContainer(v) {
				es.startContainer()
			} else if i != 0 && es.out.LineLen() != 0 {
				es.write(" ")
			}
			if err := es.encode(v); err != nil {
				return err
			}
			if i != last {
				es.write(",")
				es.brk()
			}
		}
		return es.err
	})
	if err != nil {
		return err
	}
	es.write(")")
	return es.err
}

func (es *EncState) data(d []byte) error {
	es.startContainer()
	es.write("<")
	err := es.out.Nest(func() error {
		for i, b := range d {
			es.write(string([]byte{hexDigits[b>>4], hexDigits[b&0xf]}))
			if i%2 == 1 && i != len(d)-1 && !es.brk() {
				es.write(" ")
			}
		}
		return es.err
	})
	if err != nil {
		return err
	}
	es.write(">")
	return es.err
}
