package lines

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func counts(term, input string) []int {
	c := NewCounter(io.Discard, term)
	var res []int
	for _, r := range input {
		io.WriteString(c, string(r))
		res = append(res, c.Count())
	}
	return res
}

func TestCounterSequence(t *testing.T) {
	tests := []struct {
		name  string
		term  string
		input string
		want  []int
	}{
		{"crlf", "\r\n", "ab\r\ncd", []int{1, 2, 2, 0, 1, 2}},
		{"lone cr then crlf", "\r\n", "ab\r\r\ncd", []int{1, 2, 2, 2, 0, 1, 2}},
		{"lf", "\n", "a\nb", []int{1, 0, 1}},
		{"tab counts", "\n", "\t\tx", []int{1, 2, 3}},
		{"controls do not count", "\n", "a\x00\x1b\x7fb", []int{1, 1, 1, 1, 2}},
		{"cr alone is not a terminator", "\r\n", "a\rb", []int{1, 1, 2}},
		{"multibyte", "\n", "héé\nü", []int{1, 2, 3, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, counts(tt.term, tt.input)); diff != "" {
				t.Errorf("counts mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCounterForwardsUnchanged(t *testing.T) {
	buf := &bytes.Buffer{}
	c := NewCounter(buf, "\n")
	in := "x\ty\r\n\x00é"
	if _, err := c.Write([]byte(in)); err != nil {
		t.Fatal(err)
	}
	if buf.String() != in {
		t.Errorf("got %q, want %q", buf.String(), in)
	}
}

func TestCounterSplitRune(t *testing.T) {
	c := NewCounter(io.Discard, "\n")
	d := []byte("aé€")
	for i := range d {
		c.Write(d[i : i+1])
	}
	if c.Count() != 3 {
		t.Errorf("count %d, want 3", c.Count())
	}
	c.Write([]byte{0xe2})
	c.Write([]byte{0x82})
	c.Write([]byte("b"))
	// an invalid sequence decodes as replacement characters
	if c.Count() != 6 {
		t.Errorf("count %d, want 6", c.Count())
	}
}

func TestCounterMatchIndex(t *testing.T) {
	c := NewCounter(io.Discard, "\r\n")
	io.WriteString(c, "a\r")
	if c.MatchIndex() != 1 {
		t.Errorf("match index %d, want 1", c.MatchIndex())
	}
	io.WriteString(c, "\n")
	if c.MatchIndex() != 0 || !c.AtLineStart() {
		t.Errorf("terminator not completed: match %d bol %v", c.MatchIndex(), c.AtLineStart())
	}
}

type sink struct {
	strings.Builder
	flushed, closed int
	closeErr        error
}

func (s *sink) Flush() error { s.flushed++; return nil }
func (s *sink) Close() error { s.closed++; return s.closeErr }

func TestCounterFlushClose(t *testing.T) {
	s := &sink{closeErr: errors.New("boom")}
	c := NewCounter(s, "")
	if c.Terminator() != "\n" {
		t.Errorf("default terminator %q", c.Terminator())
	}
	if err := c.Flush(); err != nil {
		t.Fatal(err)
	}
	if err := c.Close(); err == nil || err.Error() != "boom" {
		t.Errorf("close error %v", err)
	}
	if s.flushed != 2 || s.closed != 1 {
		t.Errorf("flushed %d closed %d", s.flushed, s.closed)
	}
	// plain writers are fine too
	if err := NewCounter(io.Discard, "\n").Close(); err != nil {
		t.Error(err)
	}
}
