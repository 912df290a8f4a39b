package printers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/go-task/slim-sprig/v3"
)

// TemplatePrinter renders data with a go template. The data is converted to its JSON form first,
// so template fields are named like the fields of the json output.
type TemplatePrinter struct {
	out  io.Writer
	text string
	t    *template.Template
}

func NewTemplatePrinter(text string) *TemplatePrinter {
	return &TemplatePrinter{
		out:  os.Stdout,
		text: text,
	}
}

func (p *TemplatePrinter) WithOut(out io.Writer) *TemplatePrinter {
	p.out = out
	return p
}

func (p *TemplatePrinter) Print(data any) error {
	if p.t == nil {
		t, err := template.New("t").Funcs(sprig.TxtFuncMap()).Parse(p.text)
		if err != nil {
			return fmt.Errorf("unable to parse template: %w", err)
		}
		p.t = t
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}

	var d any
	err = json.Unmarshal(raw, &d)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	err = p.t.Execute(&buf, d)
	if err != nil {
		return fmt.Errorf("unable to render template: %w", err)
	}

	_, err = fmt.Fprintf(p.out, "%s\n", buf.String())
	return err
}
