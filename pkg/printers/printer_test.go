package printers

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/navelplace/navel-lib/pkg/testcommon"
)

type result struct {
	Equal bool     `json:"equal"`
	Left  []string `json:"left"`
}

func TestPrinters(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		data    any
		want    string
		wantErr error
	}{
		{
			name:   "json",
			format: "json",
			data:   result{Equal: true, Left: []string{"a", "b"}},
			want: `{
    "equal": true,
    "left": [
        "a",
        "b"
    ]
}
`,
		},
		{
			name:   "json error",
			format: "json",
			data:   errors.New("boom"),
			want: `{
    "error": "boom"
}
`,
		},
		{
			name:   "yaml",
			format: "yaml",
			data:   result{Equal: false, Left: []string{"a"}},
			want: `---
equal: false
left:
- a
`,
		},
		{
			name:   "yaml error",
			format: "yaml",
			data:   errors.New("boom"),
			want:   "boom\n",
		},
		{
			name:   "template",
			format: `template={{ .equal }} {{ .left | join "," }}`,
			data:   result{Equal: true, Left: []string{"a", "b"}},
			want:   "true a,b\n",
		},
		{
			name:    "unknown format",
			format:  "table",
			wantErr: errors.New(`unsupported output format: "table"`),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			p, err := New(tt.format, &buf)
			if diff := cmp.Diff(tt.wantErr, err, testcommon.ErrorStringComparer()); diff != "" {
				t.Fatalf("error diff (+got -want):\n %s", diff)
			}
			if err != nil {
				return
			}

			if err := p.Print(tt.data); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if diff := cmp.Diff(tt.want, buf.String()); diff != "" {
				t.Errorf("diff (+got -want):\n %s", diff)
			}
		})
	}
}
