package feed

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/flick/domain"
	"github.com/CrestNiraj12/flick/tui/common"
)

// View renders the feed or the open post.
func (m Model) View() string {
	if m.detail {
		if p, ok := m.SelectedPost(); ok {
			return m.renderDetail(p)
		}
	}
	return m.renderFeed()
}

func (m Model) renderFeed() string {
	var b strings.Builder
	b.WriteString(m.theme.Heading.Render(m.filter.Title()))
	b.WriteString("\n")

	visible := m.Visible()
	if len(visible) == 0 {
		b.WriteString(m.theme.Muted.Render(m.filter.EmptyText()))
		b.WriteString("\n")
		return b.String()
	}

	end := min(len(visible), m.start+m.pageSize())
	cards := make([]string, 0, end-m.start)
	for i := m.start; i < end; i++ {
		cards = append(cards, m.renderCard(visible[i], i == m.cursor))
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, cards...))
	b.WriteString("\n")

	b.WriteString(m.theme.Muted.Render(fmt.Sprintf("%d of %d", m.cursor+1, len(visible))))
	b.WriteString("  ")
	b.WriteString(m.theme.Muted.Render("↑/↓ move • enter open • L like • s save"))
	return b.String()
}

func (m Model) renderCard(p domain.Post, selected bool) string {
	textW := max(m.width-cardThumbW-8, 12)

	text := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Caption.Render(common.Truncate(p.Caption, textW)),
		m.theme.Timestamp.Render(domain.FormatTimestamp(p.Timestamp)),
		"",
		common.Flags(m.theme, p.Liked, p.Saved),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.thumbnail(p, cardThumbW, cardThumbH),
		"  ",
		text,
	)

	style := m.theme.UnselectedCard
	if selected {
		style = m.theme.SelectedCard
	}
	return style.Render(body)
}

// thumbnail returns the cached preview or a placeholder box of the same size.
func (m Model) thumbnail(p domain.Post, w, h int) string {
	k := thumbKey(p.ID, w, h)
	if preview, ok := m.thumbs[k]; ok && preview != "" {
		return preview
	}
	label := "no image"
	if m.loading[k] {
		label = m.spinner.View()
	}
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, m.theme.Muted.Render(label))
}
