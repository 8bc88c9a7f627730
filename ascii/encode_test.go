package ascii

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/plist-format/go-plist/format"
	"github.com/signadot/plist-format/go-plist/ir"
)

func ints(vs ...int64) *ir.Node {
	res := ir.NewArray()
	for _, v := range vs {
		res.Append(ir.FromInt(v))
	}
	return res
}

func encodeString(t *testing.T, node *ir.Node, opts ...EncodeOption) string {
	t.Helper()
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, opts...); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestEncode(t *testing.T) {
	gnu := EncodeDialect(GNUstep)
	tests := []struct {
		name string
		in   *ir.Node
		opts []EncodeOption
		want string
	}{
		{name: "three ints", in: ints(1, 2, 3), want: "(1, 2, 3)\n"},
		{name: "openstep width 3", in: ints(1, 2, 3), opts: []EncodeOption{Width(3)}, want: "(1,\n\t2,\n\t3)\n"},
		{name: "gnustep width 3", in: ints(1, 2, 3), opts: []EncodeOption{gnu, Width(3)}, want: "(1, 2,\n\t3)\n"},
		{name: "empty array", in: ir.NewArray(), want: "()\n"},
		{name: "empty dict", in: ir.NewDict(), want: "{\n}\n"},
		{
			name: "dict",
			in: ir.FromKeyVals([]ir.KeyVal{
				{Key: "a", Val: ir.FromString("dup")},
				{Key: "b", Val: ir.FromSlice([]*ir.Node{ir.FromString("x")})},
			}),
			want: "{\n\t\"a\" = \"dup\";\n\t\"b\" =\n\t\t(\"x\");\n}\n",
		},
		{
			name: "nested dict",
			in: ir.FromKeyVals([]ir.KeyVal{
				{Key: "d", Val: ir.FromKeyVals([]ir.KeyVal{{Key: "x", Val: ir.FromInt(1)}})},
			}),
			want: "{\n\t\"d\" =\n\t\t{\n\t\t\t\"x\" = 1;\n\t\t};\n}\n",
		},
		{
			name: "dict in array",
			in:   ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromKeyVals([]ir.KeyVal{{Key: "k", Val: ir.FromInt(1)}})}),
			want: "(1,\n\t{\n\t\t\"k\" = 1;\n\t})\n",
		},
		{name: "data", in: ir.FromData([]byte{0, 1, 2, 0xff}), want: "<0001 02ff>\n"},
		{name: "odd data", in: ir.FromData([]byte{0xab, 0xcd, 0xef}), want: "<abcd ef>\n"},
		{name: "openstep data wrap", in: ir.FromData([]byte{0, 1, 2, 3, 4, 5, 6, 7}), opts: []EncodeOption{Width(10)},
			want: "<0001 0203\n\t0405 0607>\n"},
		{name: "gnustep data wrap", in: ir.FromData([]byte{0, 1, 2, 3, 4, 5, 6, 7}), opts: []EncodeOption{gnu, Width(10)},
			want: "<0001 0203 0405\n\t0607>\n"},
		{
			name: "scalars",
			in: ir.FromSlice([]*ir.Node{
				ir.FromBool(true), ir.FromBool(false), ir.FromInt(-5), ir.FromReal(1.5), ir.FromReal(1e21),
				ir.FromDate(0), ir.FromUID(5), ir.FromUID(0x1234), ir.FromUID(0),
			}),
			want: "(YES, NO, -5, 1.5, 1e+21, \"2001-01-01 00:00:00 +0000\", \"05\", \"1234\", \"00\")\n",
		},
		{
			name: "distant dates",
			in: ir.FromSlice([]*ir.Node{
				ir.FromTime(time.Date(4001, time.January, 1, 0, 0, 0, 0, time.UTC)),
				ir.FromTime(time.Date(1600, time.January, 1, 0, 0, 0, 0, time.UTC)),
			}),
			want: "(\"4001-01-01 00:00:00 +0000\", \"1600-01-01 00:00:00 +0000\")\n",
		},
		{
			name: "typed scalars",
			in:   ir.FromSlice([]*ir.Node{ir.FromInt(42), ir.FromReal(1.5), ir.FromBool(true), ir.FromBool(false), ir.FromDate(0)}),
			opts: []EncodeOption{gnu, TypedScalars(true)},
			want: "(<*I42>, <*R1.5>, <*BY>, <*BN>, <*D2001-01-01 00:00:00 +0000>)\n",
		},
		{
			name: "typed scalars ignored by openstep",
			in:   ints(42),
			opts: []EncodeOption{TypedScalars(true)},
			want: "(42)\n",
		},
		{
			name: "crlf and spaces",
			in:   ir.FromKeyVals([]ir.KeyVal{{Key: "a", Val: ir.FromInt(1)}}),
			opts: []EncodeOption{NewLine("\r\n"), IndentString("  ")},
			want: "{\r\n  \"a\" = 1;\r\n}\r\n",
		},
		{name: "format option", in: ints(1, 2, 3), opts: []EncodeOption{EncodeFormat(format.GNUstepFormat), Width(3)}, want: "(1, 2,\n\t3)\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := encodeString(t, tc.in, tc.opts...)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("output (-want +got):\n%s", diff)
			}
		})
	}
}

func TestQuote(t *testing.T) {
	in := "a\"b\\c\n\t\r\b\x01\x7fé☃𝄞"
	tests := []struct {
		d    Dialect
		want string
	}{
		{OpenStep, `"a\"b\\c\n\t\r\b\001\177é☃𝄞"`},
		{GNUstep, `"a\"b\\c\n\t\r\b\001\177\351\U2603\Ud834\Udd1e"`},
	}
	for _, tc := range tests {
		if got := Quote(in, tc.d); got != tc.want {
			t.Errorf("%s: got %s want %s", tc.d, got, tc.want)
		}
	}
	if got := Quote("", OpenStep); got != `""` {
		t.Errorf("empty: got %s", got)
	}
}

// stripLayout removes whitespace outside of quoted strings.
func stripLayout(s string) string {
	var b strings.Builder
	quoted, escaped := false, false
	for _, r := range s {
		switch {
		case escaped:
			escaped = false
		case quoted && r == '\\':
			escaped = true
		case r == '"':
			quoted = !quoted
		case !quoted && (r == ' ' || r == '\t' || r == '\n'):
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func TestDialectsDifferInLayoutOnly(t *testing.T) {
	arr := ir.NewArray()
	for i := range 40 {
		arr.Append(ir.FromString(fmt.Sprintf("item %d", i)))
	}
	doc := ir.FromKeyVals([]ir.KeyVal{
		{Key: "items", Val: arr},
		{Key: "blob", Val: ir.FromData(bytes.Repeat([]byte{0x5a}, 64))},
		{Key: "n", Val: ir.FromReal(math.Pi)},
	})
	for _, width := range []int{1, 7, 8, 9, 20, 80} {
		o := encodeString(t, doc, Width(width))
		g := encodeString(t, doc, EncodeDialect(GNUstep), Width(width))
		if diff := cmp.Diff(stripLayout(o), stripLayout(g)); diff != "" {
			t.Errorf("width %d: tokens differ (-openstep +gnustep):\n%s", width, diff)
		}
	}
	if o, g := encodeString(t, ints(1, 2, 3), Width(3)), encodeString(t, ints(1, 2, 3), EncodeDialect(GNUstep), Width(3)); o == g {
		t.Errorf("dialects agree at the width boundary: %q", o)
	}
}

func TestOpenStepLinesFit(t *testing.T) {
	arr := ints(10, 200, 3, 4000, 5, 60, 7, 800, 9, 1000, 11, 12)
	for _, width := range []int{5, 10, 16} {
		out := encodeString(t, arr, Width(width))
		for _, ln := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
			// a line only exceeds the width when its last element does
			trimmed := strings.TrimRight(ln, ",)")
			if i := strings.LastIndex(trimmed, " "); i >= 0 && i+1 > width {
				t.Errorf("width %d: line %q continued past the width", width, ln)
			}
		}
	}
}

func TestEncodeErrors(t *testing.T) {
	if err := Encode(nil, &bytes.Buffer{}); !errors.Is(err, ErrEncoding) || !errors.Is(err, ir.ErrNilValue) {
		t.Errorf("nil root: got %v", err)
	}
	bad := &ir.Node{Type: ir.DictType, Fields: []*ir.Node{ir.FromString("a")}, Values: []*ir.Node{nil}}
	if err := Encode(bad, &bytes.Buffer{}); !errors.Is(err, ir.ErrNilValue) {
		t.Errorf("nil value: got %v", err)
	}
	if err := Encode(&ir.Node{Type: ir.Type(99)}, &bytes.Buffer{}); !errors.Is(err, ErrEncoding) {
		t.Errorf("unknown type: got %v", err)
	}
}

type closeSink struct {
	bytes.Buffer
	closed bool
}

func (s *closeSink) Close() error {
	s.closed = true
	return nil
}

func TestEncoderClose(t *testing.T) {
	sink := &closeSink{}
	enc := NewEncoder(sink)
	if err := enc.Encode(ints(1)); err != nil {
		t.Fatal(err)
	}
	if err := enc.Encode(nil); err == nil {
		t.Error("expected an error for a nil document")
	}
	if err := enc.Encode(ir.FromString("x")); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	if !sink.closed {
		t.Error("sink not closed")
	}
	if got, want := sink.String(), "(1)\n\"x\"\n"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestMustString(t *testing.T) {
	if got := MustString(ints(1, 2)); got != "(1, 2)" {
		t.Errorf("got %q", got)
	}
}

func TestParseDialect(t *testing.T) {
	for _, d := range []Dialect{OpenStep, GNUstep} {
		var got Dialect
		if err := got.UnmarshalText([]byte(d.String())); err != nil {
			t.Fatal(err)
		}
		if got != d {
			t.Errorf("got %s want %s", got, d)
		}
	}
	if _, err := ParseDialect("xml"); err == nil {
		t.Error("expected an error")
	}
	if DialectFromOpts(Width(3), EncodeDialect(GNUstep)) != GNUstep {
		t.Error("dialect option not applied")
	}
}

var errSink = errors.New("sink full")

// shortWriter accepts n bytes and then fails.
type shortWriter struct{ n int }

func (w *shortWriter) Write(p []byte) (int, error) {
	if len(p) > w.n {
		n := w.n
		w.n = 0
		return n, errSink
	}
	w.n -= len(p)
	return len(p), nil
}

func TestEncodeDataWriteError(t *testing.T) {
	doc := ir.FromKeyVals([]ir.KeyVal{{Key: "blob", Val: ir.FromData(bytes.Repeat([]byte{1}, 32))}})
	for _, n := range []int{0, 12, 20, 40} {
		if err := Encode(doc, &shortWriter{n: n}, Width(10)); !errors.Is(err, errSink) {
			t.Errorf("failing after %d bytes: got %v", n, err)
		}
	}
}
