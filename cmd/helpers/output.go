package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/artpar/helpers/internal/core/collection"
)

// =============================================================================
// Output Formats
// =============================================================================

// OutputFormat selects how a command result is printed.
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

func parseOutputFormat(name string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(name)) {
	case OutputText, "":
		return OutputText, nil
	case OutputJSON:
		return OutputJSON, nil
	case OutputYAML, "yml":
		return OutputYAML, nil
	}
	return "", errors.WithHint(
		errors.Newf("unknown output format %q", name),
		"use text, json or yaml",
	)
}

func writeResult(w io.Writer, format OutputFormat, v any) error {
	switch format {
	case OutputJSON:
		return writeJSONResult(w, v)
	case OutputYAML:
		return writeYAMLResult(w, v)
	}
	return writeTextResult(w, v)
}

// =============================================================================
// Text
// =============================================================================

func writeTextResult(w io.Writer, v any) error {
	var err error
	switch t := v.(type) {
	case collection.Map:
		for _, e := range t {
			if _, err = fmt.Fprintf(w, "%s: %s\n", e.Key, textScalar(e.Value)); err != nil {
				return err
			}
		}
	case []any:
		for _, item := range t {
			if _, err = fmt.Fprintln(w, textScalar(item)); err != nil {
				return err
			}
		}
	default:
		_, err = fmt.Fprintln(w, textScalar(v))
	}
	return err
}

func textScalar(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// =============================================================================
// JSON
// =============================================================================

func writeJSONResult(w io.Writer, v any) error {
	raw, err := marshalOrdered(v)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return errors.Wrap(err, "indent json")
	}
	buf.WriteByte('\n')
	_, err = w.Write(buf.Bytes())
	return err
}

// marshalOrdered encodes v as JSON, keeping the key order of collection.Map.
func marshalOrdered(v any) ([]byte, error) {
	var buf bytes.Buffer
	switch t := v.(type) {
	case collection.Map:
		buf.WriteByte('{')
		for i, e := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(e.Key)
			if err != nil {
				return nil, err
			}
			val, err := marshalOrdered(e.Value)
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(val)
		}
		buf.WriteByte('}')
	case []any:
		buf.WriteByte('[')
		for i, item := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			val, err := marshalOrdered(item)
			if err != nil {
				return nil, err
			}
			buf.Write(val)
		}
		buf.WriteByte(']')
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, errors.Wrapf(err, "encode %T", v)
		}
		buf.Write(raw)
	}
	return buf.Bytes(), nil
}

// =============================================================================
// YAML
// =============================================================================

func writeYAMLResult(w io.Writer, v any) error {
	node, err := yamlNode(v)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return errors.Wrap(err, "encode yaml")
	}
	return enc.Close()
}

// yamlNode builds a node tree, keeping the key order of collection.Map.
func yamlNode(v any) (*yaml.Node, error) {
	switch t := v.(type) {
	case collection.Map:
		n := &yaml.Node{Kind: yaml.MappingNode}
		for _, e := range t {
			key, err := yamlNode(e.Key)
			if err != nil {
				return nil, err
			}
			val, err := yamlNode(e.Value)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, key, val)
		}
		return n, nil
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode}
		for _, item := range t {
			val, err := yamlNode(item)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, val)
		}
		return n, nil
	}

	var n yaml.Node
	if err := n.Encode(v); err != nil {
		return nil, errors.Wrapf(err, "encode %T", v)
	}
	return &n, nil
}
