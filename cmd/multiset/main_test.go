package main

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"
)

func run(t *testing.T, fs afero.Fs, args ...string) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer

	cmd := newRootCmd(fs)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, "--no-color"))

	err := cmd.Execute()

	return out.String(), errOut.String(), err
}

func testFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0600))
	}
	return fs
}

func TestCompare(t *testing.T) {
	fs := testFs(t, map[string]string{
		"/a.yaml": "- 1\n- 2\n- {name: a, tags: [x]}\n",
		"/b.json": `[{"tags": ["x"], "name": "a"}, 2, 1]`,
		"/c.yaml": "- 1\n- 1\n- 3\n",
		"/d.yaml": "name: not a list\n",
	})

	tests := []struct {
		name       string
		args       []string
		want       *comparison
		wantStderr string
		wantErr    error
	}{
		{
			name: "equal in any order",
			args: []string{"compare", "/a.yaml", "/b.json", "-o", "json"},
			want: &comparison{
				Equal: true,
				Left:  "/a.yaml",
				Right: "/b.json",
			},
			wantStderr: "✔ equal\n",
		},
		{
			name: "different",
			args: []string{"compare", "/a.yaml", "/c.yaml", "-o", "yaml"},
			want: &comparison{
				Equal:   false,
				Left:    "/a.yaml",
				Right:   "/c.yaml",
				Missing: []string{"2", `{"name":"a","tags":["x"]}`},
				Extra:   []string{"1", "3"},
			},
			wantStderr: "✘ inputs are different\n",
		},
		{
			name:    "different with fail flag",
			args:    []string{"compare", "/a.yaml", "/c.yaml", "--fail"},
			wantErr: ErrDifferent,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, errOut, err := run(t, fs, tt.args...)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			var got comparison
			require.NoError(t, yaml.Unmarshal([]byte(out), &got))

			if diff := cmp.Diff(tt.want, &got); diff != "" {
				t.Errorf("diff (+got -want):\n %s", diff)
			}
			assert.Equal(t, tt.wantStderr, errOut)
		})
	}
}

func TestCompareErrors(t *testing.T) {
	fs := testFs(t, map[string]string{
		"/a.yaml": "- 1\n",
		"/d.yaml": "name: not a list\n",
	})

	_, _, err := run(t, fs, "compare", "/a.yaml", "/missing.yaml")
	require.ErrorContains(t, err, "unable to read /missing.yaml")

	_, _, err = run(t, fs, "compare", "/a.yaml", "/d.yaml")
	require.ErrorContains(t, err, "/d.yaml does not contain a list")

	_, _, err = run(t, fs, "compare", "/a.yaml")
	require.Error(t, err)

	_, _, err = run(t, fs, "compare", "/a.yaml", "/a.yaml", "-o", "table")
	require.ErrorContains(t, err, "unsupported output format")
}

func TestQuery(t *testing.T) {
	fs := afero.NewMemMapFs()

	out, _, err := run(t, fs, "query", "http://foo?a=1&b=2", "https://bar/baz?b=2&a=1", "-o", "json")
	require.NoError(t, err)

	var got queryComparison
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, queryComparison{
		Equal:   true,
		Left:    "http://foo?a=1&b=2",
		Right:   "https://bar/baz?b=2&a=1",
		Matcher: "hasSameQueryParams(a=1&b=2)",
	}, got)

	out, _, err = run(t, fs, "query", "http://foo?a=1", "http://foo?a=1&a=1", "-o", "template={{ .equal }}")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)

	_, _, err = run(t, fs, "query", "http://foo?a=1", "http://foo?a=2", "--fail")
	require.ErrorIs(t, err, ErrDifferent)

	_, _, err = run(t, fs, "query", "http://foo?a=%zz", "http://foo")
	require.Error(t, err)
}

func TestOutputFromEnv(t *testing.T) {
	t.Setenv("MULTISET_OUTPUT", "template={{ .matcher }}")

	out, _, err := run(t, afero.NewMemMapFs(), "query", "http://foo?a=1", "http://foo?a=1")
	require.NoError(t, err)
	assert.Equal(t, "hasSameQueryParams(a=1)\n", out)
}
