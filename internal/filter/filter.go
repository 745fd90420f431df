// Package filter turns named filter selections into canonical queries.
// Only set (non-empty) selections appear in the query: an absent key
// means "don't filter", which is not the same as "match empty".
package filter

import (
	"net/url"
	"sort"
	"strings"
)

// Well-known selection names understood by the API
const (
	KeyTeam   = "team"
	KeyStatus = "status"
	KeyType   = "type"
	KeySeason = "season"
)

// Filter is an immutable-by-convention set of named selections.
// The zero value matches everything.
type Filter struct {
	selections map[string]string
}

// New creates an empty filter
func New() Filter {
	return Filter{}
}

// With returns a copy of the filter with the selection set. An empty
// value clears the selection.
func (f Filter) With(key, value string) Filter {
	out := Filter{selections: make(map[string]string, len(f.selections)+1)}
	for k, v := range f.selections {
		out.selections[k] = v
	}
	if value == "" {
		delete(out.selections, key)
	} else {
		out.selections[key] = value
	}
	return out
}

// Get returns the selection value, or "" when unset
func (f Filter) Get(key string) string {
	return f.selections[key]
}

// IsZero reports whether no selections are set
func (f Filter) IsZero() bool {
	return len(f.selections) == 0
}

// Query produces the canonical query containing only set selections
func (f Filter) Query() url.Values {
	q := url.Values{}
	for k, v := range f.selections {
		q.Set(k, v)
	}
	return q
}

// Encode returns a canonical string form: keys sorted, url-encoded.
// Two filters with the same selections always encode identically.
func (f Filter) Encode() string {
	if len(f.selections) == 0 {
		return ""
	}
	keys := make([]string, 0, len(f.selections))
	for k := range f.selections {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(f.selections[k]))
	}
	return b.String()
}

// Equal reports whether two filters compose the same query
func (f Filter) Equal(other Filter) bool {
	return f.Encode() == other.Encode()
}
