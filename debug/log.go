package debug

import (
	"fmt"
	"os"

	"github.com/signadot/plist-format/go-plist/ir"

	"github.com/goccy/go-json"
)

// Logf writes a formatted message to stderr.  *ir.Node arguments are
// rendered in their IR JSON form.
func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case *ir.Node:
			d, err := json.Marshal(x)
			if err != nil {
				args[i] = fmt.Sprintf("[raw *ir.Node] %v", x.Type)
				continue
			}
			args[i] = string(d)
		case map[string]any, []any:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
