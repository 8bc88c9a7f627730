// Package lines provides writers that know where they are on the current
// output line.
//
// A Counter wraps any io.Writer and counts the space occupying characters
// written since the last line terminator, without buffering the line:
//
//	c := lines.NewCounter(w, "\r\n")
//	io.WriteString(c, "ab\r\ncd")
//	c.Count() // 2
//
// An Indenter sits on a Counter and indents each new line by its nesting
// depth.  Text encoders consult LineLen to decide where to wrap, so the
// decision accounts for indentation and anything already written on the line.
//
// Neither type is safe for concurrent use.
package lines
