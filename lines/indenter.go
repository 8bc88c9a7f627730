package lines

import (
	"io"
	"strings"
	"unicode/utf8"
)

// Indenter writes through a Counter, prefixing every line with the indent
// string repeated depth times.  The prefix is written lazily, just before
// the first content following a terminator, so it reflects the depth at
// the time that content is written.
type Indenter struct {
	c      *Counter
	indent string
	depth  int
}

func NewIndenter(c *Counter, indent string) *Indenter {
	return &Indenter{c: c, indent: indent}
}

func (in *Indenter) Counter() *Counter { return in.c }

func (in *Indenter) Depth() int { return in.depth }

// LineLen returns the live count of characters on the current line,
// including indentation already written.
func (in *Indenter) LineLen() int { return in.c.Count() }

// Nest runs f one level deeper.  The depth is restored however f returns.
func (in *Indenter) Nest(f func() error) error {
	in.depth++
	defer func() { in.depth-- }()
	return f()
}

// WriteString writes s, indenting each line begun within it.  A terminator
// may be split across calls, but not within one of its runes.
func (in *Indenter) WriteString(s string) (int, error) {
	term := in.c.Terminator()
	_, sz := utf8.DecodeLastRuneInString(term)
	end := term[len(term)-sz:]
	total := 0
	for s != "" {
		if err := in.writePrefix(); err != nil {
			return total, err
		}
		// each chunk stops where a line could end
		chunk := s
		if i := strings.Index(s, end); i >= 0 {
			chunk = s[:i+len(end)]
		}
		n, err := in.c.WriteString(chunk)
		total += n
		if err != nil {
			return total, err
		}
		s = s[len(chunk):]
	}
	return total, nil
}

func (in *Indenter) Write(p []byte) (int, error) {
	return in.WriteString(string(p))
}

// NewLine writes the line terminator.
func (in *Indenter) NewLine() error {
	_, err := in.c.WriteString(in.c.Terminator())
	return err
}

func (in *Indenter) writePrefix() error {
	if !in.c.AtLineStart() || in.depth == 0 || in.indent == "" {
		return nil
	}
	_, err := in.c.WriteString(strings.Repeat(in.indent, in.depth))
	return err
}

var _ io.StringWriter = (*Indenter)(nil)
