package helpers

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"testing/fstest"
	"testing/iotest"
	"time"

	cerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artpar/helpers/internal/shell/env"
	"github.com/artpar/helpers/internal/shell/request"
)

// =============================================================================
// Test Helpers
// =============================================================================

var fixedNow = time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC)

func newTestHelpers(opts Options) *Helpers {
	if opts.Clock == nil {
		opts.Clock = func() time.Time { return fixedNow }
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return New(opts)
}

// =============================================================================
// Text
// =============================================================================

func TestSlugify(t *testing.T) {
	assert.Equal(t, "hello-world", Slugify("Hello, World!"))
	assert.Equal(t, "spaced", Slugify("  spaced  "))

	for _, in := range []string{"Hello, World!", "  spaced  ", "--x--", "ünï"} {
		assert.Equal(t, Slugify(in), Slugify(Slugify(in)), in)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abcde...", Truncate("abcdefgh", 5, DefaultTruncateSuffix))
	assert.Equal(t, "abc", Truncate("abc", 5, DefaultTruncateSuffix))

	long := strings.Repeat("a", 120)
	assert.Equal(t, strings.Repeat("a", 100)+"...", TruncateDefault(long))
	assert.Equal(t, "short", TruncateDefault("short"))
}

func TestCamelCase(t *testing.T) {
	assert.Equal(t, "myVariableName", CamelCase("my-variable_name"))
	assert.Equal(t, "", CamelCase(""))
}

// =============================================================================
// Collections
// =============================================================================

func TestFlatten(t *testing.T) {
	got := Flatten([]any{[]any{1, 2}, []any{3, []any{4, 5}}})
	assert.Equal(t, []any{1, 2, 3, 4, 5}, got)
	assert.Empty(t, Flatten([]any{}))
	assert.Equal(t, []any{}, Flatten(nil))
}

func TestKeyExistsRecursive(t *testing.T) {
	nested := Map{{Key: "a", Value: Map{{Key: "b", Value: Map{{Key: "x", Value: 1}}}}}}

	assert.True(t, KeyExistsRecursive("x", nested))
	assert.False(t, KeyExistsRecursive("z", nested))
}

// =============================================================================
// Dates
// =============================================================================

func TestHelpers_FormatDate(t *testing.T) {
	h := newTestHelpers(Options{})

	got, err := h.FormatDate("2024-02-29 13:45:00", DefaultDateFormat)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29 13:45:00", got)

	got, err = h.FormatDate("2024-02-29 13:45:00", "D, jS F Y g:ia")
	require.NoError(t, err)
	assert.Equal(t, "Thu, 29th February 2024 1:45pm", got)

	got, err = h.FormatDate("tomorrow", "Y-m-d")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-16", got)
}

func TestHelpers_FormatDate_ParseError(t *testing.T) {
	h := newTestHelpers(Options{})

	_, err := h.FormatDate("definitely not a date", DefaultDateFormat)
	require.Error(t, err)

	assert.True(t, errors.Is(err, ErrParse))
	assert.False(t, errors.Is(err, ErrIO))
	assert.Equal(t, KindParse, KindOf(err))
	assert.Contains(t, err.Error(), "FormatDate")
	assert.NotEmpty(t, cerr.GetAllHints(err))
}

func TestHelpers_CarbonDate(t *testing.T) {
	h := newTestHelpers(Options{})

	now, err := h.CarbonDate("")
	require.NoError(t, err)
	assert.True(t, fixedNow.Equal(now.Time()))

	d, err := h.CarbonDate("2023-07-04 09:00:00")
	require.NoError(t, err)
	assert.Equal(t, "2023-07-04", d.ToDateString())

	_, err = h.CarbonDate("nonsense text")
	assert.Equal(t, KindParse, KindOf(err))
}

func TestHelpers_FormatDate_RendersInLocation(t *testing.T) {
	h := newTestHelpers(Options{Location: time.FixedZone("UTC+2", 2*3600)})

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"utc designator", "2024-01-15T10:30:00Z", "2024-01-15 12:30:00 UTC+2"},
		{"explicit offset", "2024-01-15T10:30:00-05:00", "2024-01-15 17:30:00 UTC+2"},
		{"unix marker", "@86400", "1970-01-02 02:00:00 UTC+2"},
		{"no offset", "2024-01-15 10:30:00", "2024-01-15 10:30:00 UTC+2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := h.FormatDate(tt.input, "Y-m-d H:i:s T")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestHelpers_FormatDate_Relative(t *testing.T) {
	h := newTestHelpers(Options{})

	tests := []struct {
		input    string
		expected string
	}{
		{"+1 day", "2024-01-16 10:30:00"},
		{"1 week ago", "2024-01-08 10:30:00"},
		{"next monday", "2024-01-22 00:00:00"},
		{"tomorrow noon", "2024-01-16 12:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := h.FormatDate(tt.input, DefaultDateFormat)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestHelpers_CarbonDate_ZeroIsNow(t *testing.T) {
	h := newTestHelpers(Options{})

	d, err := h.CarbonDate("0")
	require.NoError(t, err)
	assert.True(t, fixedNow.Equal(d.Time()))
}

func TestHelpers_DateLocation(t *testing.T) {
	loc := time.FixedZone("AEST", 10*3600)
	h := newTestHelpers(Options{Location: loc})

	got, err := h.FormatDate("2024-01-15 10:30:00", "c T")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15T10:30:00+10:00 AEST", got)
}

// =============================================================================
// URLs
// =============================================================================

func TestURLWithParams(t *testing.T) {
	assert.Equal(t, "http://e.com?", URLWithParams("http://e.com", Map{}))
	assert.Equal(t, "http://e.com?a=1&b=2", URLWithParams("http://e.com", Map{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}}))
}

func TestCurrentURL(t *testing.T) {
	ctx := request.WithSnapshot(context.Background(), request.Snapshot{Scheme: "https", Host: "e.com", Path: "/docs/"})

	got, err := CurrentURL(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://e.com/docs", got)
}

func TestCurrentURL_NoRequest(t *testing.T) {
	_, err := CurrentURL(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoRequest))
	assert.Equal(t, KindNoRequest, KindOf(err))
}

// =============================================================================
// Files
// =============================================================================

func TestHelpers_FileSizeFormatted(t *testing.T) {
	h := newTestHelpers(Options{Files: fstest.MapFS{
		"empty.txt": {Data: nil},
		"half.bin":  {Data: make([]byte, 1536)},
	}})

	got, err := h.FileSizeFormatted("empty.txt")
	require.NoError(t, err)
	assert.Equal(t, "0.00 B", got)

	got, err = h.FileSizeFormatted("half.bin")
	require.NoError(t, err)
	assert.Equal(t, "1.50 KB", got)
}

func TestFileSizeFormatted_HostFilesystem(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(path, make([]byte, 1536), 0644))

	got, err := FileSizeFormatted(path)
	require.NoError(t, err)
	assert.Equal(t, "1.50 KB", got)
}

func TestFileSizeFormatted_Missing(t *testing.T) {
	_, err := FileSizeFormatted(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)

	assert.True(t, errors.Is(err, ErrIO))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	var herr *Error
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, "FileSizeFormatted", herr.Op)
}

// =============================================================================
// Environment
// =============================================================================

func TestHelpers_EnvValue(t *testing.T) {
	h := newTestHelpers(Options{Env: env.Static{
		"APP_ENV":   "production",
		"APP_DEBUG": "false",
		"NULLED":    "(null)",
	}})

	assert.Equal(t, "production", h.EnvValue("APP_ENV", "local"))
	assert.Equal(t, false, h.EnvValue("APP_DEBUG", true))
	assert.Nil(t, h.EnvValue("NULLED", "x"))
	assert.Equal(t, "local", h.EnvValue("MISSING", "local"))
}

func TestEnvValue_Process(t *testing.T) {
	t.Setenv("HELPERS_FACADE_TEST", "(true)")
	assert.Equal(t, true, EnvValue("HELPERS_FACADE_TEST", false))
}

// =============================================================================
// Random
// =============================================================================

func TestGenerateRandomString(t *testing.T) {
	hexOnly := regexp.MustCompile(`^[0-9a-f]+$`)

	a, err := GenerateRandomString(DefaultRandomLength)
	require.NoError(t, err)
	b, err := GenerateRandomString(DefaultRandomLength)
	require.NoError(t, err)

	assert.Len(t, a, 16)
	assert.Regexp(t, hexOnly, a)
	assert.NotEqual(t, a, b)

	odd, err := GenerateRandomString(7)
	require.NoError(t, err)
	assert.Len(t, odd, 6)
}

func TestHelpers_GenerateRandomString_Deterministic(t *testing.T) {
	h := newTestHelpers(Options{Random: bytes.NewReader([]byte{0x01, 0xab})})

	got, err := h.GenerateRandomString(4)
	require.NoError(t, err)
	assert.Equal(t, "01ab", got)
}

func TestHelpers_GenerateRandomString_SourceFailure(t *testing.T) {
	h := newTestHelpers(Options{Random: iotest.ErrReader(errors.New("entropy exhausted"))})

	_, err := h.GenerateRandomString(16)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRandomSource))
	assert.Equal(t, KindRandomSource, KindOf(err))
}

// =============================================================================
// Errors
// =============================================================================

func TestErrorKind_String(t *testing.T) {
	assert.Equal(t, "parse", KindParse.String())
	assert.Equal(t, "io", KindIO.String())
	assert.Equal(t, "random source", KindRandomSource.String())
	assert.Equal(t, "no request", KindNoRequest.String())
	assert.Equal(t, "unknown", KindUnknown.String())
}

func TestKindOf_ForeignError(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(errors.New("other")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestError_Message(t *testing.T) {
	err := &Error{Kind: KindIO, Op: "FileSizeFormatted", Input: "/x", Err: errors.New("boom")}
	assert.Equal(t, `FileSizeFormatted "/x": boom`, err.Error())

	err.Input = ""
	assert.Equal(t, "FileSizeFormatted: boom", err.Error())
}
