package main

import (
	"github.com/navelplace/navel-lib/pkg/queryparams"
	"github.com/spf13/cobra"
)

type queryComparison struct {
	Equal   bool   `json:"equal"`
	Left    string `json:"left"`
	Right   string `json:"right"`
	Matcher string `json:"matcher"`
}

func newQueryCmd(c *config) *cobra.Command {
	return &cobra.Command{
		Use:   "query <url> <url>",
		Short: "compares the query parameters of two urls, ignoring their order, host and path",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := queryparams.HasSameQueryParams(args[0])
			if err != nil {
				return err
			}

			result := queryComparison{
				Equal:   m.Matches(args[1]),
				Left:    args[0],
				Right:   args[1],
				Matcher: m.String(),
			}

			return c.report(cmd, result.Equal, result)
		},
	}
}
