package bplist

import (
	"errors"
	"fmt"

	"github.com/signadot/plist-format/go-plist/format"
)

var (
	ErrBadFormat = format.ErrBadFormat

	ErrMagic     = errors.New("bad magic")
	ErrVersion   = errors.New("unsupported version")
	ErrTrailer   = errors.New("malformed trailer")
	ErrOffset    = errors.New("object offset out of range")
	ErrTruncated = errors.New("truncated payload")
	ErrMarker    = errors.New("unrecognized marker")
	ErrRef       = errors.New("object reference out of range")
	ErrCycle     = errors.New("reference cycle")
	ErrKey       = errors.New("invalid dictionary key")
	ErrPayload   = errors.New("invalid payload")

	errEncoding = errors.New("encoding error")
)

// FormatError reports malformed binary input.  It matches ErrBadFormat and
// its Kind with errors.Is.
type FormatError struct {
	Kind   error
	Offset uint64
	Msg    string
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("%s: %s at offset %d", ErrBadFormat, e.Kind, e.Offset)
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	return msg
}

func (e *FormatError) Unwrap() []error {
	return []error{ErrBadFormat, e.Kind}
}

func formatErr(kind error, off uint64, msg string, args ...any) *FormatError {
	return &FormatError{Kind: kind, Offset: off, Msg: fmt.Sprintf(msg, args...)}
}
