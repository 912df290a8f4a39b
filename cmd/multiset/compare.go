package main

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/navelplace/navel-lib/pkg/collections"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

type comparison struct {
	Equal bool   `json:"equal"`
	Left  string `json:"left"`
	Right string `json:"right"`
	// Missing holds elements occurring more often on the left side.
	Missing []string `json:"missing,omitempty"`
	// Extra holds elements occurring more often on the right side.
	Extra []string `json:"extra,omitempty"`
}

func newCompareCmd(c *config) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <file> <file>",
		Short: "compares two yaml or json lists regardless of the order of their elements",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			left, err := readList(c.fs, args[0])
			if err != nil {
				return err
			}
			right, err := readList(c.fs, args[1])
			if err != nil {
				return err
			}

			result := compare(left, right)
			result.Left = args[0]
			result.Right = args[1]

			return c.report(cmd, result.Equal, result)
		},
	}
}

func readList(fs afero.Fs, path string) ([]any, error) {
	raw, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", path, err)
	}

	var list []any
	err = yaml.Unmarshal(raw, &list)
	if err != nil {
		return nil, fmt.Errorf("%s does not contain a list: %w", path, err)
	}

	return list, nil
}

func compare(left, right []any) comparison {
	result := comparison{
		Equal: collections.ContainsExactlyInAnyOrderFunc(left, right, canonical),
	}
	if result.Equal {
		return result
	}

	lc := collections.CountsOf(mapSlice(left, canonical))
	rc := collections.CountsOf(mapSlice(right, canonical))

	for _, k := range slices.Sorted(maps.Keys(lc)) {
		for range lc[k] - rc[k] {
			result.Missing = append(result.Missing, k)
		}
	}
	for _, k := range slices.Sorted(maps.Keys(rc)) {
		for range rc[k] - lc[k] {
			result.Extra = append(result.Extra, k)
		}
	}

	return result
}

// canonical returns the json form of a decoded element, which sorts object keys
// and therefore does not depend on their order.
func canonical(e any) string {
	raw, err := json.Marshal(e)
	if err != nil {
		return fmt.Sprintf("%v", e)
	}
	return string(raw)
}

func mapSlice[T, R any](s []T, fn func(T) R) []R {
	result := make([]R, 0, len(s))
	for _, e := range s {
		result = append(result, fn(e))
	}
	return result
}
