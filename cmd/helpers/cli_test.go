package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Test Helpers
// =============================================================================

type result struct {
	stdout string
	stderr string
	code   int
}

// execute runs the CLI with UTC dates and no config from the host.
func execute(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	clearEnv(t)
	t.Setenv("HELPERS_DATE_TIMEZONE", "UTC")

	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return result{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// =============================================================================
// Text Command Tests
// =============================================================================

func TestSlugifyCommand(t *testing.T) {
	res := execute(t, "", "slugify", "Hello,", "World!")

	assert.Equal(t, ExitSuccess, res.code)
	assert.Equal(t, "hello-world\n", res.stdout)
}

func TestTruncateCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"default length", []string{"truncate", "short"}, "short\n"},
		{"length flag", []string{"truncate", "-n", "5", "abcdefgh"}, "abcde...\n"},
		{"suffix flag", []string{"truncate", "-n", "3", "--suffix", "~", "abcdef"}, "abc~\n"},
		{"zero length", []string{"truncate", "-n", "0", "abc"}, "...\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := execute(t, "", tt.args...)
			assert.Equal(t, ExitSuccess, res.code, res.stderr)
			assert.Equal(t, tt.expected, res.stdout)
		})
	}
}

func TestTruncateCommand_ConfigDefaults(t *testing.T) {
	cfg := writeTemp(t, "helpers.yaml", "truncate:\n  length: 4\n  suffix: \"!\"\n")

	res := execute(t, "", "--config", cfg, "truncate", "abcdefgh")
	assert.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "abcd!\n", res.stdout)
}

func TestCamelCommand(t *testing.T) {
	res := execute(t, "", "camel", "my-variable_name")
	assert.Equal(t, "myVariableName\n", res.stdout)
}

// =============================================================================
// Collection Command Tests
// =============================================================================

func TestFlattenCommand_Stdin(t *testing.T) {
	res := execute(t, "[[1, 2], [3, [4, 5]]]", "flatten")

	assert.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "1\n2\n3\n4\n5\n", res.stdout)
}

func TestFlattenCommand_JSONOutput(t *testing.T) {
	res := execute(t, `{"b": [1, "x"], "a": {"c": true}}`, "flatten", "-o", "json")

	assert.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.JSONEq(t, `[1, "x", true]`, res.stdout)
}

func TestFlattenCommand_YAMLFile(t *testing.T) {
	path := writeTemp(t, "doc.yml", "servers:\n  - name: a\n    port: 80\n  - name: b\n")

	res := execute(t, "", "flatten", path)
	assert.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "a\n80\nb\n", res.stdout)
}

func TestFlattenCommand_FormatFlag(t *testing.T) {
	res := execute(t, "a = [1, 2]\n", "flatten", "--format", "toml", "-")

	assert.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "1\n2\n", res.stdout)
}

func TestFlattenCommand_InvalidDocument(t *testing.T) {
	res := execute(t, `{"a": }`, "flatten")

	assert.Equal(t, ExitParseError, res.code)
	assert.Contains(t, res.stderr, "error:")
}

func TestFlattenCommand_UnknownExtension(t *testing.T) {
	path := writeTemp(t, "doc.xml", "<a/>")

	res := execute(t, "", "flatten", path)
	assert.Equal(t, ExitParseError, res.code)
	assert.Contains(t, res.stderr, "hint: pass --format")
}

func TestFlattenCommand_MissingFile(t *testing.T) {
	res := execute(t, "", "flatten", filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, ExitIOError, res.code)
}

func TestKeyExistsCommand(t *testing.T) {
	doc := `{"a": {"b": {"x": 1}}, "list": ["p", "q"]}`

	tests := []struct {
		key      string
		expected string
	}{
		{"x", "true\n"},
		{"b", "true\n"},
		{"1", "true\n"},
		{"z", "false\n"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			res := execute(t, doc, "key-exists", tt.key)
			assert.Equal(t, ExitSuccess, res.code, res.stderr)
			assert.Equal(t, tt.expected, res.stdout)
		})
	}
}

// =============================================================================
// Date Command Tests
// =============================================================================

func TestDateCommand(t *testing.T) {
	res := execute(t, "", "date", "-f", "D, jS F Y g:ia", "2024-02-29", "13:45:00")

	assert.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "Thu, 29th February 2024 1:45pm\n", res.stdout)
}

func TestDateCommand_DefaultFormat(t *testing.T) {
	res := execute(t, "", "date", "2024-02-29T13:45:00Z")
	assert.Equal(t, "2024-02-29 13:45:00\n", res.stdout)
}

func TestDateCommand_ParseError(t *testing.T) {
	res := execute(t, "", "date", "definitely not a date")

	assert.Equal(t, ExitParseError, res.code)
	assert.Contains(t, res.stderr, "FormatDate")
	assert.Contains(t, res.stderr, "hint:")
}

func TestNowCommand(t *testing.T) {
	res := execute(t, "", "now", "-f", "Y-m-d\\TH:i:s")

	assert.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\n$`, res.stdout)
}

func TestDateCommand_InvalidTimezone(t *testing.T) {
	clearEnv(t)
	t.Setenv("HELPERS_DATE_TIMEZONE", "Nowhere/Special")

	var stdout, stderr bytes.Buffer
	code := run([]string{"now"}, strings.NewReader(""), &stdout, &stderr)

	assert.Equal(t, ExitConfigError, code)
	assert.Contains(t, stderr.String(), "IANA")
}

// =============================================================================
// URL Command Tests
// =============================================================================

func TestURLCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"no params", []string{"url", "http://e.com"}, "http://e.com?\n"},
		{"ordered params", []string{"url", "http://e.com", "b=2", "a=1"}, "http://e.com?b=2&a=1\n"},
		{"escaped value", []string{"url", "http://e.com", "q=a b&c"}, "http://e.com?q=a+b%26c\n"},
		{"repeated key", []string{"url", "http://e.com", "tag=x", "tag=y"}, "http://e.com?tag%5B0%5D=x&tag%5B1%5D=y\n"},
		{"empty value", []string{"url", "http://e.com", "k="}, "http://e.com?k=\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := execute(t, "", tt.args...)
			assert.Equal(t, ExitSuccess, res.code, res.stderr)
			assert.Equal(t, tt.expected, res.stdout)
		})
	}
}

func TestURLCommand_BadParam(t *testing.T) {
	res := execute(t, "", "url", "http://e.com", "novalue")

	assert.Equal(t, ExitUsageError, res.code)
	assert.Contains(t, res.stderr, "novalue")
}

// =============================================================================
// File Command Tests
// =============================================================================

func TestFileSizeCommand(t *testing.T) {
	path := writeTemp(t, "half.bin", strings.Repeat("x", 1536))

	res := execute(t, "", "filesize", path)
	assert.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "1.50 KB\n", res.stdout)
}

func TestFileSizeCommand_Many(t *testing.T) {
	dir := t.TempDir()
	small := filepath.Join(dir, "small")
	big := filepath.Join(dir, "big")
	require.NoError(t, os.WriteFile(small, []byte("abc"), 0644))
	require.NoError(t, os.WriteFile(big, make([]byte, 3<<20), 0644))

	res := execute(t, "", "filesize", "-o", "json", small, big)
	assert.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.JSONEq(t, `{"`+small+`": "3.00 B", "`+big+`": "3.00 MB"}`, res.stdout)
	assert.Less(t, strings.Index(res.stdout, small), strings.Index(res.stdout, big))
}

func TestFileSizeCommand_Missing(t *testing.T) {
	res := execute(t, "", "filesize", filepath.Join(t.TempDir(), "missing"))

	assert.Equal(t, ExitIOError, res.code)
	assert.Contains(t, res.stderr, "hint: check that the path exists")
}

// =============================================================================
// Environment Command Tests
// =============================================================================

func TestEnvCommand(t *testing.T) {
	t.Setenv("HELPERS_CLI_FLAG", "(false)")
	t.Setenv("HELPERS_CLI_NAME", `"quoted"`)

	res := execute(t, "", "env", "HELPERS_CLI_FLAG")
	assert.Equal(t, "false\n", res.stdout)

	res = execute(t, "", "env", "HELPERS_CLI_NAME")
	assert.Equal(t, "quoted\n", res.stdout)
}

func TestEnvCommand_Default(t *testing.T) {
	res := execute(t, "", "env", "HELPERS_CLI_UNSET", "--default", "fallback")
	assert.Equal(t, "fallback\n", res.stdout)

	res = execute(t, "", "env", "HELPERS_CLI_UNSET", "-o", "json")
	assert.Equal(t, "null\n", res.stdout)
}

func TestEnvCommand_DotenvFile(t *testing.T) {
	clearEnv(t)
	dotenv := writeTemp(t, ".env", "APP_NAME=demo\nAPP_DEBUG=true\n")
	t.Setenv("HELPERS_ENV_FILE", dotenv)

	var stdout, stderr bytes.Buffer
	code := run([]string{"env", "APP_NAME"}, strings.NewReader(""), &stdout, &stderr)
	require.Equal(t, ExitSuccess, code, stderr.String())
	assert.Equal(t, "demo\n", stdout.String())

	stdout.Reset()
	code = run([]string{"env", "APP_DEBUG", "-o", "yaml"}, strings.NewReader(""), &stdout, &stderr)
	require.Equal(t, ExitSuccess, code, stderr.String())
	assert.Equal(t, "true\n", stdout.String())
}

func TestEnvCommand_MissingDotenvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("HELPERS_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	var stdout, stderr bytes.Buffer
	code := run([]string{"env", "APP_NAME"}, strings.NewReader(""), &stdout, &stderr)
	assert.Equal(t, ExitConfigError, code)
}

// =============================================================================
// Random Command Tests
// =============================================================================

func TestRandomCommand(t *testing.T) {
	res := execute(t, "", "random")
	assert.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Regexp(t, `^[0-9a-f]{16}\n$`, res.stdout)

	res = execute(t, "", "random", "-n", "9")
	assert.Regexp(t, `^[0-9a-f]{8}\n$`, res.stdout)

	res = execute(t, "", "random", "-n", "1")
	assert.Equal(t, "\n", res.stdout)
}

// =============================================================================
// Global Flag Tests
// =============================================================================

func TestOutputFlag_YAML(t *testing.T) {
	res := execute(t, `{"a": [1, 2]}`, "flatten", "-o", "yaml")

	assert.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "- 1\n- 2\n", res.stdout)
}

func TestOutputFlag_Unknown(t *testing.T) {
	res := execute(t, "", "slugify", "x", "-o", "xml")

	assert.Equal(t, ExitUsageError, res.code)
	assert.Contains(t, res.stderr, "hint: use text, json or yaml")
}

func TestOutputConfig(t *testing.T) {
	cfg := writeTemp(t, "helpers.toml", "[output]\nformat = \"json\"\n")

	res := execute(t, "", "--config", cfg, "slugify", "Hello World")
	assert.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "\"hello-world\"\n", res.stdout)
}

func TestInvalidConfigFile(t *testing.T) {
	cfg := writeTemp(t, "bad.yaml", "invalid: yaml: content: [[[")

	res := execute(t, "", "--config", cfg, "slugify", "x")
	assert.Equal(t, ExitConfigError, res.code)
	assert.Empty(t, res.stdout)
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing args", []string{"slugify"}},
		{"too many args", []string{"random", "extra"}},
		{"unknown command", []string{"frobnicate"}},
		{"bad flag value", []string{"truncate", "-n", "many", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := execute(t, "", tt.args...)
			assert.Equal(t, ExitUsageError, res.code)
			assert.Contains(t, res.stderr, "error:")
		})
	}
}

func TestVersionCommand(t *testing.T) {
	res := execute(t, "", "version")

	assert.Equal(t, ExitSuccess, res.code)
	assert.Equal(t, "helpers dev (built unknown)\n", res.stdout)
}

func TestLogsGoToStderr(t *testing.T) {
	clearEnv(t)
	t.Setenv("HELPERS_LOG_LEVEL", "debug")

	var stdout, stderr bytes.Buffer
	code := run([]string{"slugify", "A B"}, strings.NewReader(""), &stdout, &stderr)

	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "a-b\n", stdout.String())
	assert.Contains(t, stderr.String(), "configuration loaded")
}
