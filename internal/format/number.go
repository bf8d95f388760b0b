// Number formatting utilities shared by the CLI and the notation renderer.

package format

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatNumberString inserts thousand separators into a numeric string.
// Optimized to reduce memory allocations.
//
// Parameters:
//   - s: The numeric string to format.
//
// Returns:
//   - string: The formatted string with comma separators.
func FormatNumberString(s string) string {
	if len(s) == 0 {
		return ""
	}
	prefix := ""
	if s[0] == '-' {
		prefix = "-"
		s = s[1:]
	}
	n := len(s)
	if n <= 3 {
		return prefix + s
	}

	// Precise calculation of the required capacity to avoid reallocations
	numSeparators := (n - 1) / 3
	capacity := len(prefix) + n + numSeparators
	var builder strings.Builder
	builder.Grow(capacity)
	builder.WriteString(prefix)

	firstGroupLen := n % 3
	if firstGroupLen == 0 {
		firstGroupLen = 3
	}
	builder.WriteString(s[:firstGroupLen])

	for i := firstGroupLen; i < n; i += 3 {
		builder.WriteByte(',')
		builder.WriteString(s[i : i+3])
	}
	return builder.String()
}

// FormatUint formats an unsigned integer with thousand separators.
// It is a convenience wrapper over FormatNumberString for display of
// indices and digit counts.
//
// Parameters:
//   - n: The number to format.
//
// Returns:
//   - string: The formatted string with comma separators.
func FormatUint(n uint64) string {
	return FormatNumberString(strconv.FormatUint(n, 10))
}

// FormatBytes renders a byte count in a human readable unit (B, KiB, MiB,
// GiB, TiB), keeping one decimal for scaled values.
//
// Parameters:
//   - b: The byte count.
//
// Returns:
//   - string: The formatted size.
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGT"[exp])
}
