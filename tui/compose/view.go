package compose

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/flick/app"
	"github.com/CrestNiraj12/flick/infra/imaging"
	"github.com/CrestNiraj12/flick/tui/common"
)

// maxSourceWidth caps how much of the source is echoed while loading.
const maxSourceWidth = 60

// View renders the step of the flow the user is on.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.theme.Heading.Render("Create Post"))
	b.WriteString("\n")

	switch m.flow.State() {
	case app.FlowIdle:
		b.WriteString(m.source.View())
		b.WriteString("\n\n")
		b.WriteString(m.theme.Muted.Render("enter load • esc close"))
	case app.FlowLoading:
		fmt.Fprintf(&b, "%s Loading %s", m.spinner.View(), common.Truncate(imaging.DisplaySource(m.flow.Source()), maxSourceWidth))
		b.WriteString("\n\n")
		b.WriteString(m.theme.Muted.Render("esc cancel"))
	case app.FlowCropping:
		b.WriteString(m.cropView())
	case app.FlowCropped:
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.preview, "  ", m.theme.Success.Render("Cropped 400×500")))
		b.WriteString("\n\n")
		b.WriteString(m.caption.View())
		b.WriteString("\n\n")
		b.WriteString(m.theme.Muted.Render("enter post • ctrl+e editor • ctrl+r new image • esc close"))
	}

	if m.err != nil {
		b.WriteString("\n\n")
		b.WriteString(m.theme.Error.Render("Error: " + m.err.Error()))
	}
	return m.theme.Modal.Render(b.String())
}

func (m Model) cropView() string {
	r := m.selector.Rect()
	info := lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("Zoom %.1f×", m.selector.Zoom()),
		m.theme.Muted.Render(fmt.Sprintf("%d×%d at %d,%d", r.Width, r.Height, r.X, r.Y)),
	)
	if m.rendering {
		info = lipgloss.JoinVertical(lipgloss.Left, info, "", m.spinner.View()+" Cropping...")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, m.preview, "  ", info) +
		"\n\n" +
		m.theme.Muted.Render("←↑↓→/hjkl pan • +/- zoom • enter done • ctrl+r new image • esc close")
}
