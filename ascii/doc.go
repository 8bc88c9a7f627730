// Package ascii writes property lists in the legacy text dialects.
//
// # Usage
//
//	node := ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromInt(2), ir.FromInt(3)})
//	err := ascii.Encode(node, os.Stdout) // (1, 2, 3)
//
//	// GNUstep dialect, packed to 40 columns
//	err = ascii.Encode(node, w, ascii.EncodeDialect(ascii.GNUstep), ascii.Width(40))
//
// # Layout
//
// Dictionaries put each entry on its own line.  Arrays and data are packed
// onto lines up to the configured width, continuation lines being indented
// one level.  Where a line ends depends on the dialect: OpenStep ends it as
// soon as it is Width characters long while GNUstep ends it only once it
// is longer.  Nested dictionaries, arrays and data always start on a line
// of their own.
//
// Strings are always quoted.  GNUstep additionally escapes every character
// beyond ASCII.
//
// Encoding recurses once per level of nesting, so stack use grows with the
// depth of the tree.
//
// # Related Packages
//
//   - github.com/signadot/plist-format/go-plist/lines - line tracking output
//   - github.com/signadot/plist-format/go-plist/bplist - binary encoding
package ascii
