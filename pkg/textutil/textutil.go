// Package textutil provides small text helpers shared across Outboundly.
package textutil

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// AllBlank reports whether every given string is empty or whitespace-only.
func AllBlank(ss ...string) bool {
	for _, s := range ss {
		if strings.TrimSpace(s) != "" {
			return false
		}
	}
	return true
}

// JoinBlocks joins text blocks with blank-line separators.
func JoinBlocks(blocks ...string) string {
	return strings.Join(blocks, "\n\n")
}

// Truncate shortens s to at most width display cells, appending an ellipsis
// when anything was cut. Width is measured ANSI-aware.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

// FirstLine returns s up to the first newline.
func FirstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
