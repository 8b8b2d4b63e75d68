package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCamelCase(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"mixed separators", "my-variable_name", "myVariableName"},
		{"spaces", "Hello World", "helloWorld"},
		{"repeated separators", "hello  --__world", "helloWorld"},
		{"leading separator", "-leading", "leading"},
		{"trailing separator", "trailing_", "trailing"},
		{"already camel", "alreadyCamel", "alreadyCamel"},
		{"keeps inner capitals", "my-HTTP-server", "myHTTPServer"},
		{"digits", "version_2_beta", "version2Beta"},
		{"tab is kept", "a\tb", "a\tB"},
		{"non-ascii untouched", "élan-vital", "élanVital"},
		{"empty", "", ""},
		{"only separators", "-_ ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CamelCase(tt.input))
		})
	}
}
