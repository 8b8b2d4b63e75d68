package text

import (
	"regexp"
	"strings"
)

// =============================================================================
// Slug Generation
// =============================================================================

// nonSlugRun matches one run of characters that may not appear in a slug.
var nonSlugRun = regexp.MustCompile(`[^A-Za-z0-9-]+`)

// Slugify converts text to a URL-friendly slug.
//
// The transformation rules are:
//   - Letters, digits and hyphens are kept
//   - Every run of other characters becomes a single hyphen
//   - A run at the very start or end of the text is dropped
//   - The result is lowercased
//
// Hyphens present in the input are never trimmed, so Slugify is idempotent.
//
// Example:
//
//	Slugify("Hello, World!")  // returns "hello-world"
//	Slugify("  spaced  ")     // returns "spaced"
//	Slugify("My App 2.0")     // returns "my-app-2-0"
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	last := 0
	for _, loc := range nonSlugRun.FindAllStringIndex(s, -1) {
		b.WriteString(s[last:loc[0]])
		if loc[0] > 0 && loc[1] < len(s) {
			b.WriteByte('-')
		}
		last = loc[1]
	}
	b.WriteString(s[last:])

	// Only ASCII survives the filter.
	return strings.ToLower(b.String())
}
