package feed

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/flick/tui/common"
)

// Update handles messages for the feed and the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampCursor()
		return m, m.ensureThumbnailsCmd()

	case PostsChangedMsg:
		m.posts = msg.Posts
		m.prune()
		m.clampCursor()
		return m, m.ensureThumbnailsCmd()

	case SetViewMsg:
		if msg.Filter == m.filter {
			return m, nil
		}
		m.filter = msg.Filter
		m.cursor = 0
		m.start = 0
		m.detail = false
		m.confirm = false
		return m, m.ensureThumbnailsCmd()

	case ThemeChangedMsg:
		m.theme = common.NewTheme(msg.Dark)
		return m, nil

	case thumbnailLoadedMsg:
		delete(m.loading, msg.Key)
		m.thumbs[msg.Key] = msg.Preview
		return m, nil

	case spinner.TickMsg:
		if len(m.loading) == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.detail {
			return m.updateDetailKey(msg)
		}
		return m.updateFeedKey(msg)
	}
	return m, nil
}

func (m Model) updateFeedKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	n := len(m.Visible())
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < n-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Open):
		if n == 0 {
			return m, nil
		}
		m.detail = true
	case key.Matches(msg, m.keys.Like):
		if p, ok := m.SelectedPost(); ok {
			return m, emit(LikePostMsg{ID: p.ID})
		}
		return m, nil
	case key.Matches(msg, m.keys.Save):
		if p, ok := m.SelectedPost(); ok {
			return m, emit(SavePostMsg{ID: p.ID})
		}
		return m, nil
	default:
		return m, nil
	}
	m.scrollToCursor()
	return m, m.ensureThumbnailsCmd()
}

func (m Model) updateDetailKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.confirm {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			m.confirm = false
			if p, ok := m.SelectedPost(); ok {
				return m, emit(DeletePostMsg{ID: p.ID})
			}
		case key.Matches(msg, m.keys.Deny):
			m.confirm = false
		}
		return m, nil
	}

	n := len(m.Visible())
	switch {
	case key.Matches(msg, m.keys.Back):
		m.detail = false
		m.scrollToCursor()
	case key.Matches(msg, m.keys.Left):
		if n > 0 {
			m.cursor = (m.cursor - 1 + n) % n
		}
	case key.Matches(msg, m.keys.Right):
		if n > 0 {
			m.cursor = (m.cursor + 1) % n
		}
	case key.Matches(msg, m.keys.Like):
		if p, ok := m.SelectedPost(); ok {
			return m, emit(LikePostMsg{ID: p.ID})
		}
		return m, nil
	case key.Matches(msg, m.keys.Save):
		if p, ok := m.SelectedPost(); ok {
			return m, emit(SavePostMsg{ID: p.ID})
		}
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		if n > 0 {
			m.confirm = true
		}
		return m, nil
	default:
		return m, nil
	}
	return m, m.ensureThumbnailsCmd()
}

// clampCursor keeps the selection inside the filtered list. A selection that
// falls past the end closes the detail view.
func (m *Model) clampCursor() {
	n := len(m.Visible())
	if m.cursor >= n {
		m.detail = false
		m.confirm = false
		m.cursor = max(n-1, 0)
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.scrollToCursor()
}

func (m *Model) scrollToCursor() {
	page := m.pageSize()
	if m.cursor < m.start {
		m.start = m.cursor
	}
	if m.cursor >= m.start+page {
		m.start = m.cursor - page + 1
	}
	n := len(m.Visible())
	if m.start > max(n-page, 0) {
		m.start = max(n-page, 0)
	}
	if m.start < 0 {
		m.start = 0
	}
}

// pageSize is the number of cards that fit on screen.
func (m Model) pageSize() int {
	return max((m.height-headerRows)/cardHeight, 1)
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
