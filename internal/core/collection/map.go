// Package collection provides nested-collection helpers.
// This is part of the Functional Core - all functions are pure with no I/O.
//
// A nested collection is any value built from Map, []any, or plain Go maps.
// Map keeps insertion order, which is what associative arrays need when
// results depend on it (flattening, query strings). Plain Go maps are
// walked in sorted key order so results stay deterministic.
package collection

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
)

// =============================================================================
// Types
// =============================================================================

// Entry is one key/value pair of a Map.
type Entry struct {
	Key   string
	Value any
}

// Map is an insertion-ordered mapping from string keys to values.
type Map []Entry

// Set replaces the value stored under key, or appends a new entry.
func (m *Map) Set(key string, value any) {
	for i := range *m {
		if (*m)[i].Key == key {
			(*m)[i].Value = value
			return
		}
	}
	*m = append(*m, Entry{Key: key, Value: value})
}

// Get returns the value stored under key.
func (m Map) Get(key string) (any, bool) {
	for _, e := range m {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Has reports whether key is present.
func (m Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Keys returns the keys in order.
func (m Map) Keys() []string {
	keys := make([]string, len(m))
	for i, e := range m {
		keys[i] = e.Key
	}
	return keys
}

// =============================================================================
// Traversal
// =============================================================================

// Entries returns the ordered key/value pairs of c and whether c is a collection.
// List entries are keyed by their index.
func Entries(c any) ([]Entry, bool) {
	switch v := c.(type) {
	case Map:
		return v, true
	case *Map:
		if v == nil {
			return nil, true
		}
		return *v, true
	case []any:
		entries := make([]Entry, len(v))
		for i, item := range v {
			entries[i] = Entry{Key: strconv.Itoa(i), Value: item}
		}
		return entries, true
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		entries := make([]Entry, len(keys))
		for i, k := range keys {
			entries[i] = Entry{Key: k, Value: v[k]}
		}
		return entries, true
	}
	return reflectEntries(c)
}

// reflectEntries handles typed slices and maps such as []int or map[int]string.
func reflectEntries(c any) ([]Entry, bool) {
	if c == nil {
		return nil, false
	}

	rv := reflect.ValueOf(c)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			// Byte slices are text, not lists.
			return nil, false
		}
		entries := make([]Entry, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			entries[i] = Entry{Key: strconv.Itoa(i), Value: rv.Index(i).Interface()}
		}
		return entries, true
	case reflect.Map:
		entries := make([]Entry, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			entries = append(entries, Entry{Key: KeyString(iter.Key().Interface()), Value: iter.Value().Interface()})
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
		return entries, true
	}
	return nil, false
}

// IsCollection reports whether v is a nested collection rather than a leaf.
func IsCollection(v any) bool {
	_, ok := Entries(v)
	return ok
}

// KeyString normalizes an array key the way associative arrays do:
// integers and their decimal strings name the same key, and booleans
// become 1 or 0.
func KeyString(key any) string {
	switch k := key.(type) {
	case string:
		return k
	case bool:
		if k {
			return "1"
		}
		return "0"
	case int:
		return strconv.Itoa(k)
	case int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(k).Int(), 10)
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(k).Uint(), 10)
	case float32:
		return strconv.FormatInt(int64(k), 10)
	case float64:
		return strconv.FormatInt(int64(k), 10)
	case nil:
		return ""
	}
	return fmt.Sprint(key)
}
