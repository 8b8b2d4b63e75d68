// Package decode reads nested collections from JSON, YAML and TOML documents.
//
// Mappings are decoded into collection.Map so the document's key order
// survives; flattening and query building depend on it.
package decode

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/artpar/helpers/internal/core/collection"
)

// Format names a document syntax.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

var (
	// ErrUnknownFormat is returned for a format name or extension with no decoder.
	ErrUnknownFormat = errors.New("unknown document format")

	// ErrInvalidDocument is returned when a document does not parse.
	ErrInvalidDocument = errors.New("invalid document")
)

// =============================================================================
// Entry Points
// =============================================================================

// ParseFormat maps a name such as "yml" or "JSON" to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	}
	return "", errors.Wrapf(ErrUnknownFormat, "%q", name)
}

// FormatFromPath picks a Format from the file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Decode parses data in the given format.
func Decode(data []byte, format Format) (any, error) {
	var (
		v   any
		err error
	)
	switch format {
	case FormatJSON:
		v, err = decodeJSON(data)
	case FormatYAML:
		v, err = decodeYAML(data)
	case FormatTOML:
		v, err = decodeTOML(data)
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "decode %s", format), ErrInvalidDocument)
	}
	return v, nil
}

// DecodeFile reads and parses the file at path, choosing the format from its extension.
func DecodeFile(path string) (any, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return Decode(data, format)
}

// =============================================================================
// JSON
// =============================================================================

// decodeJSON walks the token stream so object keys keep their order.
func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := jsonValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after top-level value")
	}
	return v, nil
}

func jsonValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			m := collection.Map{}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, _ := keyTok.(string)
				val, err := jsonValue(dec)
				if err != nil {
					return nil, err
				}
				m.Set(key, val)
			}
			_, err := dec.Token() // '}'
			return m, err
		case '[':
			list := []any{}
			for dec.More() {
				val, err := jsonValue(dec)
				if err != nil {
					return nil, err
				}
				list = append(list, val)
			}
			_, err := dec.Token() // ']'
			return list, err
		}
		return nil, errors.Newf("unexpected delimiter %q", t)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i, nil
		}
		return t.Float64()
	}
	return tok, nil
}

// =============================================================================
// YAML
// =============================================================================

func decodeYAML(data []byte) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return yamlValue(&doc)
}

func yamlValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return yamlValue(n.Content[0])
	case yaml.MappingNode:
		m := collection.Map{}
		for i := 0; i+1 < len(n.Content); i += 2 {
			val, err := yamlValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(n.Content[i].Value, val)
		}
		return m, nil
	case yaml.SequenceNode:
		list := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			val, err := yamlValue(item)
			if err != nil {
				return nil, err
			}
			list = append(list, val)
		}
		return list, nil
	case yaml.AliasNode:
		return yamlValue(n.Alias)
	}

	var scalar any
	if err := n.Decode(&scalar); err != nil {
		return nil, err
	}
	return scalar, nil
}

// =============================================================================
// TOML
// =============================================================================

func decodeTOML(data []byte) (any, error) {
	var raw map[string]any
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, err
	}

	// Keys() lists keys in document order; use it to order each table.
	order := make(map[string]int)
	for i, key := range md.Keys() {
		if _, seen := order[key.String()]; !seen {
			order[key.String()] = i
		}
	}
	return tomlValue(raw, nil, order), nil
}

func tomlValue(v any, path toml.Key, order map[string]int) any {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		position := func(k string) int {
			if p, ok := order[childKey(path, k).String()]; ok {
				return p
			}
			return len(order)
		}
		sort.SliceStable(keys, func(i, j int) bool {
			pi, pj := position(keys[i]), position(keys[j])
			if pi != pj {
				return pi < pj
			}
			return keys[i] < keys[j]
		})

		m := make(collection.Map, 0, len(keys))
		for _, k := range keys {
			m = append(m, collection.Entry{Key: k, Value: tomlValue(t[k], childKey(path, k), order)})
		}
		return m
	case []map[string]any:
		list := make([]any, len(t))
		for i, item := range t {
			list[i] = tomlValue(item, path, order)
		}
		return list
	case []any:
		list := make([]any, len(t))
		for i, item := range t {
			list[i] = tomlValue(item, path, order)
		}
		return list
	}
	return v
}

func childKey(path toml.Key, k string) toml.Key {
	child := make(toml.Key, len(path), len(path)+1)
	copy(child, path)
	return append(child, k)
}
