// Package env looks up configuration values from the process environment
// and optional .env files.
package env

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// =============================================================================
// Sources
// =============================================================================

// Source looks up raw environment values.
type Source interface {
	Lookup(key string) (string, bool)
}

// Process reads the environment of the running process.
type Process struct{}

// Lookup implements Source.
func (Process) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Static is a fixed set of values, mostly useful in tests.
type Static map[string]string

// Lookup implements Source.
func (s Static) Lookup(key string) (string, bool) {
	v, ok := s[key]
	return v, ok
}

// Chain consults each source in order and returns the first hit.
type Chain []Source

// Lookup implements Source.
func (c Chain) Lookup(key string) (string, bool) {
	for _, s := range c {
		if s == nil {
			continue
		}
		if v, ok := s.Lookup(key); ok {
			return v, true
		}
	}
	return "", false
}

// File holds the values of a dotenv file.
type File struct {
	v *viper.Viper
}

// LoadFile reads a dotenv file ("KEY=value" lines, comments and quotes allowed).
func LoadFile(path string) (*File, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "read env file %s", path)
	}
	return &File{v: v}, nil
}

// Lookup implements Source. Keys are matched case-insensitively, as viper does.
func (f *File) Lookup(key string) (string, bool) {
	if f == nil || !f.v.IsSet(key) {
		return "", false
	}
	return f.v.GetString(key), true
}

// NewSource returns the process environment, backed by the dotenv file at
// path when path is not empty. Process values take precedence.
func NewSource(path string) (Source, error) {
	if path == "" {
		return Process{}, nil
	}
	f, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return Chain{Process{}, f}, nil
}

// =============================================================================
// Values
// =============================================================================

// Value returns the coerced value of key, or def when key is unset.
func Value(src Source, key string, def any) any {
	if src == nil {
		src = Process{}
	}
	raw, ok := src.Lookup(key)
	if !ok {
		return def
	}
	return Coerce(raw)
}

// Coerce converts the literal spellings used in .env files:
//
//	true, (true)    -> true
//	false, (false)  -> false
//	empty, (empty)  -> ""
//	null, (null)    -> nil
//
// Matching is case-insensitive. A value wrapped in matching single or
// double quotes is unquoted. Everything else is returned as a string.
func Coerce(raw string) any {
	switch strings.ToLower(raw) {
	case "true", "(true)":
		return true
	case "false", "(false)":
		return false
	case "empty", "(empty)":
		return ""
	case "null", "(null)":
		return nil
	}

	if len(raw) >= 2 {
		first, last := raw[0], raw[len(raw)-1]
		if (first == '"' || first == '\'') && first == last {
			return raw[1 : len(raw)-1]
		}
	}
	return raw
}
