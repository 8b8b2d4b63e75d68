// Package helpers is a collection of small, independent helper functions:
// slugs, truncation and camelCase for text; flattening and recursive key
// lookup for nested collections; date parsing and PHP-style date formats;
// current-request and query-string URLs; file sizes; environment values;
// and random hex strings.
//
// Pure helpers are package-level functions. Helpers that touch the outside
// world (clock, filesystem, environment, entropy) are methods on Helpers,
// whose collaborators are injected through Options. Package-level wrappers
// for those use a default Helpers backed by the host.
package helpers

import (
	"context"
	"crypto/rand"
	"io"
	"time"

	"github.com/artpar/helpers/internal/core/collection"
	"github.com/artpar/helpers/internal/core/crypto"
	"github.com/artpar/helpers/internal/core/date"
	"github.com/artpar/helpers/internal/core/query"
	"github.com/artpar/helpers/internal/core/text"
	"github.com/artpar/helpers/internal/shell/env"
	"github.com/artpar/helpers/internal/shell/files"
	"github.com/artpar/helpers/internal/shell/request"
)

// =============================================================================
// Defaults
// =============================================================================

const (
	DefaultTruncateLength = text.DefaultTruncateLength
	DefaultTruncateSuffix = text.DefaultTruncateSuffix
	DefaultDateFormat     = date.DefaultFormat
	DefaultRandomLength   = crypto.DefaultLength
)

// =============================================================================
// Types
// =============================================================================

type (
	// Map is an insertion-ordered associative collection.
	Map = collection.Map

	// Entry is one key/value pair of a Map.
	Entry = collection.Entry

	// Date is a point in time that formats itself with PHP date() tokens.
	Date = date.Date

	// EnvSource looks up raw environment values.
	EnvSource = env.Source

	// FileSystem returns file information for a path.
	FileSystem = files.Stater
)

// Options holds the collaborators used by Helpers. Zero fields use the host.
type Options struct {
	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time

	// Location is used for date text without an offset. Defaults to time.Local.
	Location *time.Location

	// Random is the entropy source. Defaults to crypto/rand.Reader.
	Random io.Reader

	// Env is the environment source. Defaults to the process environment.
	Env EnvSource

	// Files is the filesystem for size lookups. Defaults to the host filesystem.
	Files FileSystem
}

// Helpers runs the helpers that need outside collaborators.
// It is immutable and safe for concurrent use.
type Helpers struct {
	opts Options
}

// New creates Helpers, filling unset options with host defaults.
func New(opts Options) *Helpers {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Random == nil {
		opts.Random = rand.Reader
	}
	if opts.Env == nil {
		opts.Env = env.Process{}
	}
	if opts.Files == nil {
		opts.Files = files.OS{}
	}
	return &Helpers{opts: opts}
}

var std = New(Options{})

// Default returns the Helpers used by the package-level functions.
func Default() *Helpers {
	return std
}

// =============================================================================
// Text
// =============================================================================

// Slugify converts text to a lowercase, hyphen-delimited slug.
func Slugify(s string) string {
	return text.Slugify(s)
}

// Truncate cuts s to length bytes and appends suffix if anything was cut.
func Truncate(s string, length int, suffix string) string {
	return text.Truncate(s, length, suffix)
}

// TruncateDefault truncates to DefaultTruncateLength with DefaultTruncateSuffix.
func TruncateDefault(s string) string {
	return text.Truncate(s, DefaultTruncateLength, DefaultTruncateSuffix)
}

// CamelCase joins hyphen, underscore or space separated words into camelCase.
func CamelCase(s string) string {
	return text.CamelCase(s)
}

// =============================================================================
// Collections
// =============================================================================

// Flatten returns the leaf values of a nested collection in depth-first order.
func Flatten(c any) []any {
	return collection.Flatten(c)
}

// KeyExistsRecursive reports whether key exists at any depth of c.
func KeyExistsRecursive(key any, c any) bool {
	return collection.KeyExistsRecursive(key, c)
}

// =============================================================================
// Dates
// =============================================================================

// FormatDate parses date text to an instant and renders it in the
// configured location with PHP date() format characters.
func (h *Helpers) FormatDate(dateText, format string) (string, error) {
	t, err := date.Parse(dateText, h.opts.Clock(), h.opts.Location)
	if err != nil {
		return "", newError(KindParse, "FormatDate", dateText, err)
	}
	return date.Format(t.In(h.opts.Location), format), nil
}

// CarbonDate parses date text into a Date; empty text and "0" yield the current time.
func (h *Helpers) CarbonDate(dateText string) (Date, error) {
	d, err := date.ParseDate(dateText, h.opts.Clock(), h.opts.Location)
	if err != nil {
		return Date{}, newError(KindParse, "CarbonDate", dateText, err)
	}
	return d, nil
}

// FormatDate uses the default Helpers.
func FormatDate(dateText, format string) (string, error) {
	return std.FormatDate(dateText, format)
}

// CarbonDate uses the default Helpers.
func CarbonDate(dateText string) (Date, error) {
	return std.CarbonDate(dateText)
}

// =============================================================================
// URLs
// =============================================================================

// CurrentURL returns the absolute URL of the request captured in ctx by the
// request middleware, without its query string.
func CurrentURL(ctx context.Context) (string, error) {
	u, err := request.CurrentURL(ctx)
	if err != nil {
		return "", newError(KindNoRequest, "CurrentURL", "", err)
	}
	return u, nil
}

// URLWithParams appends "?" and the encoded params to base.
// The "?" is added even when params is empty.
func URLWithParams(base string, params any) string {
	return query.WithParams(base, params)
}

// =============================================================================
// Files
// =============================================================================

// FileSizeFormatted returns the size of the file at path as e.g. "1.50 KB".
func (h *Helpers) FileSizeFormatted(path string) (string, error) {
	s, err := files.FormattedSize(h.opts.Files, path)
	if err != nil {
		return "", newError(KindIO, "FileSizeFormatted", path, err)
	}
	return s, nil
}

// FileSizeFormatted uses the default Helpers.
func FileSizeFormatted(path string) (string, error) {
	return std.FileSizeFormatted(path)
}

// =============================================================================
// Environment
// =============================================================================

// EnvValue returns the value of key from the environment source, or def when unset.
// The literals true, false, empty and null (optionally parenthesized) are converted.
func (h *Helpers) EnvValue(key string, def any) any {
	return env.Value(h.opts.Env, key, def)
}

// EnvValue uses the default Helpers.
func EnvValue(key string, def any) any {
	return std.EnvValue(key, def)
}

// =============================================================================
// Random
// =============================================================================

// GenerateRandomString returns length/2 random bytes hex encoded.
// Odd lengths lose one character; lengths below 2 yield "".
func (h *Helpers) GenerateRandomString(length int) (string, error) {
	s, err := crypto.RandomHex(h.opts.Random, length)
	if err != nil {
		return "", newError(KindRandomSource, "GenerateRandomString", "", err)
	}
	return s, nil
}

// GenerateRandomString uses the default Helpers.
func GenerateRandomString(length int) (string, error) {
	return std.GenerateRandomString(length)
}
