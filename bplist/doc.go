// Package bplist reads and writes binary property lists (bplist00).
//
// A document is an 8 byte header, a sequence of objects, a table of object
// offsets and a 32 byte trailer.  Containers refer to their elements by
// object identifier, so a value occurring several times in a tree is stored
// once:
//
//	d, err := bplist.EncodeBytes(node)
//	node, err := bplist.DecodeBytes(d)
//
// Identifiers are assigned by package idtable.  Malformed input produces a
// *FormatError, which matches ErrBadFormat and one of the more specific
// kinds such as ErrTrailer or ErrCycle under errors.Is.
//
// Encoding and decoding both recurse once per level of container nesting.
package bplist
