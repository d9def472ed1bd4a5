// Package util provides small string helpers shared by the dashboard views.
package util

import (
	"github.com/mattn/go-runewidth"
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

// Pluralize returns singular if count is 1, otherwise plural.
func Pluralize(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}

// Truncate shortens s to at most width terminal cells, ending in an
// ellipsis when something was cut. Wide runes count as two cells.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, Ellipsis)
}

// Center pads s with spaces on both sides to width cells. Text wider than
// width is truncated.
func Center(s string, width int) string {
	s = Truncate(s, width)
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	left := gap / 2
	return runewidth.FillRight(runewidth.FillLeft(s, left+runewidth.StringWidth(s)), width)
}
