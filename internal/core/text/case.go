package text

// =============================================================================
// Case Conversion
// =============================================================================

// CamelCase converts hyphen, underscore or space separated words to camelCase.
//
// Hyphens and underscores are treated as spaces. The first letter of every
// word is upper-cased, spaces are removed, and the first letter of the result
// is lower-cased. Only ASCII letters change case; the rest of each word is
// left as-is, so "my-HTTP-server" becomes "myHTTPServer".
//
// Whitespace other than the space character still starts a new word but is
// kept in the output.
//
// Example:
//
//	CamelCase("my-variable_name") // returns "myVariableName"
//	CamelCase("Hello World")      // returns "helloWorld"
func CamelCase(s string) string {
	out := make([]byte, 0, len(s))

	startOfWord := true
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '-' || c == '_' {
			c = ' '
		}
		if startOfWord {
			c = upperASCII(c)
		}
		startOfWord = isWordDelimiter(c)
		if c != ' ' {
			out = append(out, c)
		}
	}

	if len(out) > 0 {
		out[0] = lowerASCII(out[0])
	}
	return string(out)
}

func isWordDelimiter(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\f', '\v':
		return true
	}
	return false
}

func upperASCII(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

func lowerASCII(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
