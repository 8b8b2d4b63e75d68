// Package query builds URL query strings from nested collections.
// This is part of the Functional Core - all functions are pure with no I/O.
//
// Encoding follows PHP's http_build_query with RFC 1738 escaping:
// spaces become "+", "~" is percent-encoded, nested collections become
// bracketed keys ("a%5Bb%5D=c"), nil values are skipped and booleans
// render as 1 or 0. Parameter order is the collection order.
package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/artpar/helpers/internal/core/collection"
)

// Build encodes params as a query string without the leading "?".
// Non-collection params yield "".
//
// Example:
//
//	Build(collection.Map{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}}) // returns "a=1&b=2"
func Build(params any) string {
	entries, ok := collection.Entries(params)
	if !ok {
		return ""
	}

	var pairs []string
	for _, e := range entries {
		pairs = appendPairs(pairs, Escape(e.Key), e.Value)
	}
	return strings.Join(pairs, "&")
}

// WithParams appends "?" and the encoded params to base.
// The "?" is appended even when params are empty.
//
// Example:
//
//	WithParams("http://e.com", nil) // returns "http://e.com?"
func WithParams(base string, params any) string {
	return base + "?" + Build(params)
}

// Escape percent-encodes s the way PHP's urlencode does.
func Escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "~", "%7E")
}

func appendPairs(pairs []string, key string, value any) []string {
	if value == nil {
		return pairs
	}
	if entries, ok := collection.Entries(value); ok {
		for _, e := range entries {
			pairs = appendPairs(pairs, key+"%5B"+Escape(e.Key)+"%5D", e.Value)
		}
		return pairs
	}
	return append(pairs, key+"="+Escape(scalarString(value)))
}

func scalarString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case bool:
		if s {
			return "1"
		}
		return "0"
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return collection.KeyString(s)
	case fmt.Stringer:
		return s.String()
	}
	return fmt.Sprint(v)
}
