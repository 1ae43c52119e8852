package ui

import "fmt"

// truncate shortens s to at most width runes, appending an ellipsis when
// anything was cut.
func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}

// money renders a dollar amount the way the panel displays billables.
func money(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// listWindow returns the [start, end) slice bounds that keep cursor
// visible inside a list of total rows shown through a window of size max.
func listWindow(cursor, total, max int) (int, int) {
	if total <= max {
		return 0, total
	}
	start := cursor - max/2
	if start < 0 {
		start = 0
	}
	if start+max > total {
		start = total - max
	}
	return start, start + max
}
