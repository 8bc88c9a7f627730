package ascii

import "github.com/signadot/plist-format/go-plist/format"

type EncodeOption func(*EncState)

func EncodeDialect(d Dialect) EncodeOption {
	return func(es *EncState) { es.dialect = d }
}

// EncodeFormat selects the dialect of a text format.  Formats other than
// GNUstepFormat select OpenStep.
func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) {
		if f == format.GNUstepFormat {
			es.dialect = GNUstep
			return
		}
		es.dialect = OpenStep
	}
}

// Width sets the line length arrays and data are packed to.
func Width(n int) EncodeOption {
	return func(es *EncState) { es.width = n }
}

func IndentString(s string) EncodeOption {
	return func(es *EncState) { es.indent = s }
}

func NewLine(s string) EncodeOption {
	return func(es *EncState) { es.newline = s }
}

// TypedScalars writes GNUstep typed forms such as <*I42> for numbers,
// booleans and dates.  It has no effect in the OpenStep dialect.
func TypedScalars(v bool) EncodeOption {
	return func(es *EncState) { es.typed = v }
}

// DialectFromOpts extracts the dialect from encode options.
func DialectFromOpts(opts ...EncodeOption) Dialect {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return es.dialect
}
