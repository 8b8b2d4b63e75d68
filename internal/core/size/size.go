// Package size formats byte counts for display.
// This is part of the Functional Core - all functions are pure with no I/O.
package size

import "fmt"

// Units are the binary magnitudes Format can produce, smallest first.
var Units = []string{"B", "KB", "MB", "GB", "TB"}

const base = 1024

// Exponent returns floor(log1024(bytes)), clamped to the largest unit.
// Zero and negative sizes use the byte unit.
//
// Integer division avoids the rounding a floating logarithm can show at
// exact powers of 1024.
func Exponent(bytes int64) int {
	exp := 0
	for n := bytes; n >= base && exp < len(Units)-1; n /= base {
		exp++
	}
	return exp
}

// Format converts a byte count to a two-decimal value and unit.
//
// Example:
//
//	Format(0)       // returns "0.00 B"
//	Format(1536)    // returns "1.50 KB"
//	Format(1 << 30) // returns "1.00 GB"
func Format(bytes int64) string {
	exp := Exponent(bytes)
	value := float64(bytes)
	for i := 0; i < exp; i++ {
		value /= base
	}
	return fmt.Sprintf("%.2f %s", value, Units[exp])
}
