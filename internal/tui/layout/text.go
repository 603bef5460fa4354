package layout

import (
	"regexp"
	"unicode/utf8"
)

// ansiRegex matches ANSI escape sequences.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// VisibleLength returns the visible length of a string (excluding ANSI codes).
func VisibleLength(s string) int {
	return utf8.RuneCountInString(StripANSI(s))
}

// TruncateText truncates text to maxWidth with ellipsis.
// Returns the truncated text and whether truncation occurred.
func TruncateText(text string, maxWidth int, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", true
	}

	if utf8.RuneCountInString(text) <= maxWidth {
		return text, false
	}

	ellipsis := []rune(cfg.Ellipsis)
	if maxWidth <= len(ellipsis) {
		return string(ellipsis[:maxWidth]), true
	}

	runes := []rune(text)
	return string(runes[:maxWidth-len(ellipsis)]) + cfg.Ellipsis, true
}

// PadRight pads text with spaces to width visible characters.
// Longer text is returned unchanged.
func PadRight(text string, width int) string {
	n := VisibleLength(text)
	if n >= width {
		return text
	}
	pad := make([]byte, width-n)
	for i := range pad {
		pad[i] = ' '
	}
	return text + string(pad)
}
