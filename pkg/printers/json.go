package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// JSONPrinter prints data in indented JSON format
type JSONPrinter struct {
	out io.Writer
}

func NewJSONPrinter() *JSONPrinter {
	return &JSONPrinter{
		out: os.Stdout,
	}
}

func (p *JSONPrinter) WithOut(out io.Writer) *JSONPrinter {
	p.out = out
	return p
}

func (p *JSONPrinter) Print(data any) error {
	if err, ok := data.(error); ok {
		data = map[string]string{"error": err.Error()}
	}

	content, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		return fmt.Errorf("unable to marshal to json: %w", err)
	}

	_, err = fmt.Fprintf(p.out, "%s\n", content)
	return err
}
