// Package text provides pure string transformations.
//
// This package is part of the functional core: every function is pure
// (no I/O, no side effects) and safe for concurrent use.
//
// # Functions
//
//   - Slugify: Convert arbitrary text to a lowercase, hyphen-delimited slug
//   - Truncate: Cut text to a byte length and append a suffix
//   - CamelCase: Join separated words into camelCase
//
// # Usage
//
//	slug := text.Slugify("Hello, World!")          // "hello-world"
//	short := text.Truncate(body, 100, "...")
//	name := text.CamelCase("my-variable_name")     // "myVariableName"
package text
