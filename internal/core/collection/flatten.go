package collection

// =============================================================================
// Flattening
// =============================================================================

// Flatten returns every leaf value of c in depth-first order.
//
// Nested collections are descended into; empty ones contribute nothing.
// A leaf passed directly is returned as a one-element slice; nil input
// has no leaves.
//
// Example:
//
//	Flatten([]any{[]any{1, 2}, []any{3, []any{4, 5}}}) // returns [1 2 3 4 5]
func Flatten(c any) []any {
	result := []any{}
	if c == nil {
		return result
	}
	walkLeaves(c, func(v any) {
		result = append(result, v)
	})
	return result
}

func walkLeaves(v any, visit func(any)) {
	entries, ok := Entries(v)
	if !ok {
		visit(v)
		return
	}
	for _, e := range entries {
		walkLeaves(e.Value, visit)
	}
}

// =============================================================================
// Key Lookup
// =============================================================================

// KeyExistsRecursive reports whether key is present in c or in any
// collection nested inside it, at any depth.
//
// Keys are compared after KeyString normalization, so 0 and "0" match the
// first element of a list. Leaf values are never searched.
//
// Example:
//
//	m := Map{{Key: "a", Value: Map{{Key: "b", Value: Map{{Key: "x", Value: 1}}}}}}
//	KeyExistsRecursive("x", m) // returns true
//	KeyExistsRecursive("z", m) // returns false
func KeyExistsRecursive(key any, c any) bool {
	entries, ok := Entries(c)
	if !ok {
		return false
	}

	want := KeyString(key)
	for _, e := range entries {
		if e.Key == want {
			return true
		}
	}
	for _, e := range entries {
		if IsCollection(e.Value) && KeyExistsRecursive(want, e.Value) {
			return true
		}
	}
	return false
}
