package feed

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/flick/domain"
	"github.com/CrestNiraj12/flick/tui/common"
)

func (m Model) renderDetail(p domain.Post) string {
	n := len(m.Visible())
	textW := max(m.width-detailThumbW-6, 16)

	caption := lipgloss.NewStyle().Width(textW).Render(p.Caption)
	side := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Caption.Render(caption),
		"",
		m.theme.Timestamp.Render(domain.FormatTimestamp(p.Timestamp)),
		"",
		common.Flags(m.theme, p.Liked, p.Saved),
		"",
		m.theme.Muted.Render(fmt.Sprintf("%d / %d", m.cursor+1, n)),
	)

	var b strings.Builder
	b.WriteString(m.theme.Heading.Render(m.filter.Title()))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		m.thumbnail(p, detailThumbW, detailThumbH),
		"   ",
		side,
	))
	b.WriteString("\n\n")

	if m.confirm {
		b.WriteString(m.theme.Confirm.Render("Delete this post? (y/n)"))
		return b.String()
	}
	b.WriteString(m.theme.Muted.Render("←/→ browse • L like • s save • d delete • esc back"))
	return b.String()
}
