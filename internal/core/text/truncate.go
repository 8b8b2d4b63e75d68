package text

// =============================================================================
// Truncation
// =============================================================================

const (
	// DefaultTruncateLength is the length Truncate callers use when none is given.
	DefaultTruncateLength = 100

	// DefaultTruncateSuffix is appended to text that was cut short.
	DefaultTruncateSuffix = "..."
)

// Truncate cuts s to at most length bytes and appends suffix when anything was removed.
// Text that already fits is returned unchanged, without the suffix.
//
// Length is measured in bytes, so a multi-byte character may be split.
// A negative length is treated as zero.
//
// Example:
//
//	Truncate("abcdefgh", 5, "...") // returns "abcde..."
//	Truncate("abc", 5, "...")      // returns "abc"
func Truncate(s string, length int, suffix string) string {
	if length < 0 {
		length = 0
	}
	if len(s) <= length {
		return s
	}
	return s[:length] + suffix
}
