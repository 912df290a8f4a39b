// Package printers renders command results in different output formats.
package printers

import (
	"fmt"
	"io"
	"os"
	"strings"
)

type Printer interface {
	Print(data any) error
}

const templatePrefix = "template="

// New returns the printer for the given output format, which is one of "json", "yaml"
// or "template=<go template>". Output goes to stdout when out is nil.
func New(format string, out io.Writer) (Printer, error) {
	if out == nil {
		out = os.Stdout
	}

	switch {
	case format == "json":
		return NewJSONPrinter().WithOut(out), nil
	case format == "yaml", format == "":
		return NewYAMLPrinter().WithOut(out), nil
	case strings.HasPrefix(format, templatePrefix):
		return NewTemplatePrinter(strings.TrimPrefix(format, templatePrefix)).WithOut(out), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %q", format)
	}
}
