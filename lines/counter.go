package lines

import (
	"io"
	"unicode"
	"unicode/utf8"
)

// Counter forwards everything written to it and keeps track of how many
// space occupying characters were written since the last complete line
// terminator.
//
// Tabs count, other control characters do not, everything else counts.  The
// terminator is matched incrementally so a partial match followed by the
// terminator's first character resynchronises, as for "\r\r\n" with a "\r\n"
// terminator.
type Counter struct {
	w    io.Writer
	term []rune

	count int // characters since the last terminator
	match int // runes of term matched so far
	bol   bool

	// partial UTF-8 sequence carried between writes
	pending [utf8.UTFMax]byte
	nPend   int
}

// NewCounter returns a Counter writing to w which resets its count on
// terminator.  An empty terminator defaults to "\n".
func NewCounter(w io.Writer, terminator string) *Counter {
	if terminator == "" {
		terminator = "\n"
	}
	return &Counter{
		w:    w,
		term: []rune(terminator),
		bol:  true,
	}
}

// Count returns the number of space occupying characters written since the
// last complete terminator.
func (c *Counter) Count() int { return c.count }

// MatchIndex returns how many runes of the terminator have been matched by
// the most recent output.
func (c *Counter) MatchIndex() int { return c.match }

// AtLineStart reports whether nothing has been written since the last
// complete terminator (or since the Counter was created).
func (c *Counter) AtLineStart() bool { return c.bol }

// Terminator returns the line terminator.
func (c *Counter) Terminator() string { return string(c.term) }

func (c *Counter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.scan(p[:n])
	return n, err
}

func (c *Counter) WriteString(s string) (int, error) {
	n, err := io.WriteString(c.w, s)
	c.scanString(s[:n])
	return n, err
}

func (c *Counter) scan(p []byte) {
	if c.nPend != 0 {
		p = append(c.pending[:c.nPend:c.nPend], p...)
		c.nPend = 0
	}
	for len(p) > 0 {
		if !utf8.FullRune(p) {
			c.nPend = copy(c.pending[:], p)
			return
		}
		r, sz := utf8.DecodeRune(p)
		c.step(r)
		p = p[sz:]
	}
}

func (c *Counter) scanString(s string) {
	if c.nPend != 0 {
		c.scan([]byte(s))
		return
	}
	for i := 0; i < len(s); {
		if !utf8.FullRuneInString(s[i:]) {
			c.scan([]byte(s[i:]))
			return
		}
		r, sz := utf8.DecodeRuneInString(s[i:])
		c.step(r)
		i += sz
	}
}

func (c *Counter) step(r rune) {
	c.bol = false
	if r == c.term[c.match] {
		c.match++
		if c.match == len(c.term) {
			c.count = 0
			c.match = 0
			c.bol = true
			return
		}
	} else if r == c.term[0] {
		c.match = 1
	} else {
		c.match = 0
	}
	if r == '\t' || !unicode.IsControl(r) {
		c.count++
	}
}

// Flush flushes the underlying writer if it supports flushing.
func (c *Counter) Flush() error {
	if f, ok := c.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close flushes and closes the underlying writer.  Close is a no-op beyond
// flushing when the writer is not an io.Closer.
func (c *Counter) Close() error {
	err := c.Flush()
	if cl, ok := c.w.(io.Closer); ok {
		if cerr := cl.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
