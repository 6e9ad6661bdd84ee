package common

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Truncate shortens s to at most width terminal cells, ending with "…".
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = strings.Join(strings.Fields(s), " ")
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

// Flags renders the like and save markers for a post.
func Flags(t Theme, liked, saved bool) string {
	like := t.Muted.Render("♡")
	if liked {
		like = t.Liked.Render("♥")
	}
	save := t.Muted.Render("☆")
	if saved {
		save = t.Saved.Render("★")
	}
	return like + " " + save
}
