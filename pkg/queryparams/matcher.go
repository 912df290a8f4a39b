// Package queryparams compares the query parameters of URLs while ignoring their order.
package queryparams

import (
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"

	"github.com/hashicorp/go-set/v2"
	"github.com/navelplace/navel-lib/pkg/collections"
)

// Matcher matches URLs with exactly the same query parameters in name, number and value,
// ignoring their order as well as scheme, host and path.
//
// Matcher implements gomock.Matcher.
type Matcher struct {
	params url.Values
}

// HasSameQueryParams returns a matcher for the query parameters of the given URL.
func HasSameQueryParams(rawURL string) (*Matcher, error) {
	params, err := parse(rawURL)
	if err != nil {
		return nil, err
	}
	return FromValues(params), nil
}

func FromURL(u *url.URL) *Matcher {
	if u == nil {
		return FromValues(nil)
	}
	return FromValues(u.Query())
}

func FromValues(params url.Values) *Matcher {
	if params == nil {
		params = url.Values{}
	}
	return &Matcher{params: params}
}

// Matches returns true if x has the same query parameters. x can be a string, a URL,
// url.Values or a fmt.Stringer. Anything else never matches.
func (m *Matcher) Matches(x any) bool {
	var (
		params url.Values
		err    error
	)

	switch v := x.(type) {
	case nil:
		params = url.Values{}
	case string:
		params, err = parse(v)
	case *url.URL:
		if v != nil {
			params = v.Query()
		}
	case url.URL:
		params = v.Query()
	case url.Values:
		params = v
	case fmt.Stringer:
		params, err = parse(v.String())
	default:
		return false
	}
	if err != nil {
		return false
	}

	return Equal(m.params, params)
}

func (m *Matcher) String() string {
	return fmt.Sprintf("hasSameQueryParams(%s)", m.params.Encode())
}

// Equal returns true if both have the same parameter names and each name has the same values
// in any order.
func Equal(a, b url.Values) bool {
	if !set.From(slices.Collect(maps.Keys(a))).Equal(set.From(slices.Collect(maps.Keys(b)))) {
		return false
	}

	for name, values := range a {
		if !collections.ContainsExactlyInAnyOrder(values, b[name]) {
			return false
		}
	}

	return true
}

// parse extracts the query parameters of a raw URL. Input without a query part has no parameters.
func parse(rawURL string) (url.Values, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("unable to parse url %q: %w", rawURL, err)
	}

	params, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return nil, fmt.Errorf("unable to parse query of %q: %w", rawURL, err)
	}

	return params, nil
}
