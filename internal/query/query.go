package query

import (
	"log/slog"
	"net/url"
	"strings"
)

// Filter identifies one of the optional query parameters accepted by the giveaway listing API
type Filter int

const (
	// ID selects a single giveaway by its numeric identifier
	ID Filter = iota

	// Platform restricts results to a platform (e.g. "steam", "epic-games-store")
	Platform

	// Type restricts results to a giveaway type (e.g. "game", "loot", "beta")
	Type

	// SortBy orders the results (e.g. "date", "value", "popularity")
	SortBy
)

// filters lists every filter in the order it is matched against tokens and
// emitted into the query string.
var filters = [...]Filter{ID, Platform, Type, SortBy}

var keys = [...]string{
	ID:       "id",
	Platform: "platform",
	Type:     "type",
	SortBy:   "sort-by",
}

// Key returns the wire name of the filter
func (f Filter) Key() string {
	return keys[f]
}

// prefix is the token pattern that assigns the filter, e.g. "sort-by="
func (f Filter) prefix() string {
	return keys[f] + "="
}

// String implements fmt.Stringer
func (f Filter) String() string {
	return f.Key()
}

// Query is the set of filters sent to the giveaway listing API.
//
// The zero value is an empty query. A Query is a plain value and is safe to copy.
type Query struct {
	values  [len(filters)]string
	present [len(filters)]bool
}

// Parse builds a Query from raw command-line tokens.
//
// Each token is matched case-insensitively against the filter patterns "id=",
// "platform=", "type=" and "sort-by=", in that order, anywhere in the token.
// The first match classifies the token and the value is the original token
// with the pattern length removed from its start. Later tokens overwrite
// earlier ones. Tokens that match nothing are ignored.
func Parse(tokens []string) Query {
	var q Query
	for _, token := range tokens {
		lower := strings.ToLower(token)
		for _, f := range filters {
			p := f.prefix()
			if !strings.Contains(lower, p) {
				continue
			}
			if len(token) >= len(p) {
				q.Set(f, token[len(p):])
			}
			break
		}
	}
	return q
}

// Set assigns a value to the filter
func (q *Query) Set(f Filter, value string) {
	q.values[f] = value
	q.present[f] = true
}

// Get returns the value of the filter and whether it is present
func (q Query) Get(f Filter) (string, bool) {
	return q.values[f], q.present[f]
}

// Len returns the number of present filters
func (q Query) Len() int {
	n := 0
	for _, ok := range q.present {
		if ok {
			n++
		}
	}
	return n
}

// IsIDLookup reports whether the query asks for exactly one giveaway by id.
func (q Query) IsIDLookup() bool {
	_, ok := q.Get(ID)
	return ok && q.Len() == 1
}

// Encode serializes the query as "?key=value&key=value".
//
// Present filters are emitted in the fixed order id, platform, type, sort-by.
// An empty query encodes to "?".
func (q Query) Encode() string {
	var b strings.Builder
	b.WriteByte('?')
	first := true
	for _, f := range filters {
		value, ok := q.Get(f)
		if !ok {
			continue
		}
		if !first {
			b.WriteByte('&')
		}
		first = false
		b.WriteString(f.Key())
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(value))
	}
	return b.String()
}

// LogValue implements slog.LogValuer, grouping the present filters
func (q Query) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(filters))
	for _, f := range filters {
		if value, ok := q.Get(f); ok {
			attrs = append(attrs, slog.String(f.Key(), value))
		}
	}
	return slog.GroupValue(attrs...)
}
