// Package format names the property list dialects and recognizes them.
//
// # Usage
//
//	f, err := format.ParseFormat("gnustep")
//	f, err := format.Detect(data) // binary or IR JSON
//
// # Related Packages
//
//   - github.com/signadot/plist-format/go-plist/bplist - binary dialect
//   - github.com/signadot/plist-format/go-plist/ascii - OpenStep and GNUstep dialects
package format
