package utils

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Ellipsis is appended to text cut by Shorten.
const Ellipsis = "..."

// Shorten collapses whitespace runs to single spaces and, when the result is
// longer than maxLength runes, cuts it back to the last whole word that fits
// and appends Ellipsis. A first word longer than maxLength is cut as-is.
func Shorten(text string, maxLength int) string {
	collapsed := strings.Join(strings.Fields(text), " ")
	if collapsed == "" {
		return ""
	}

	runes := []rune(collapsed)
	if len(runes) <= maxLength {
		return collapsed
	}
	if maxLength <= 0 {
		return Ellipsis
	}

	cut := string(runes[:maxLength])
	if runes[maxLength] != ' ' {
		if i := strings.LastIndexByte(cut, ' '); i >= 0 {
			cut = cut[:i]
		}
	}

	return strings.TrimRight(cut, " ") + Ellipsis
}

// Truncate shortens s to maxLen runes, replacing the last rune with "…" if needed.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return "…"
	}
	return string(runes[:maxLen-1]) + "…"
}

// PadRight pads s with spaces so its terminal display width reaches width.
func PadRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

// DisplayWidth returns the number of terminal cells s occupies.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}
