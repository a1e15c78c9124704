package prompt

import "unicode/utf8"

// Character caps applied before a transcript is embedded in a prompt.
const (
	MaxDeepAnalysisChars = 100_000
	MaxQuickScanChars    = 5_000
	MaxChatContextChars  = 30_000
)

// TruncationMarker is appended whenever a transcript is cut.
const TruncationMarker = "\n...[truncated due to length]"

// Truncate returns s unchanged when it has at most max characters, otherwise
// its first max characters followed by TruncationMarker. Characters are runes
// so multi-byte text is never split mid-sequence.
func Truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i] + TruncationMarker
		}
		n++
	}
	return s
}
