package feed

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/flick/domain"
	"github.com/CrestNiraj12/flick/tui/common"
)

// Thumbnail sizes in terminal cells. Each cell holds two pixel rows, so
// both are 4:5.
const (
	cardThumbW   = 16
	cardThumbH   = 10
	detailThumbW = 32
	detailThumbH = 20

	cardHeight = cardThumbH + 2 // thumbnail + border
	headerRows = 6
)

// --- Messages (in) ---

// PostsChangedMsg replaces the displayed collection.
type PostsChangedMsg struct {
	Posts []domain.Post
}

// SetViewMsg switches the active view filter.
type SetViewMsg struct {
	Filter domain.ViewFilter
}

// ThemeChangedMsg switches between light and dark styles.
type ThemeChangedMsg struct {
	Dark bool
}

// thumbnailLoadedMsg carries a rendered preview for one post.
type thumbnailLoadedMsg struct {
	Key     string
	Preview string
}

// --- Messages (out) ---

// LikePostMsg asks the root to toggle liked on a post.
type LikePostMsg struct{ ID string }

// SavePostMsg asks the root to toggle saved on a post.
type SavePostMsg struct{ ID string }

// DeletePostMsg asks the root to delete a post.
type DeletePostMsg struct{ ID string }

// --- Model ---

// Model holds the state for the feed grid and the full-post detail view.
type Model struct {
	posts   []domain.Post // full collection, newest first
	filter  domain.ViewFilter
	cursor  int // index into the filtered list
	start   int // first visible card
	detail  bool
	confirm bool // delete confirmation in the detail view

	width  int
	height int

	keys    common.KeyMap
	theme   common.Theme
	spinner spinner.Model

	thumbs  map[string]string
	loading map[string]bool
}

// New creates a feed model showing posts.
func New(posts []domain.Post, dark bool) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return Model{
		posts:   posts,
		keys:    common.DefaultKeyMap(),
		theme:   common.NewTheme(dark),
		spinner: s,
		thumbs:  map[string]string{},
		loading: map[string]bool{},
		height:  40,
		width:   100,
	}
}

// Init starts thumbnail rendering for the initial posts.
func (m Model) Init() tea.Cmd {
	return m.ensureThumbnailsCmd()
}

// Visible returns the posts matching the active filter.
func (m Model) Visible() []domain.Post {
	return domain.Filter(m.posts, m.filter)
}

// Filter returns the active view filter.
func (m Model) Filter() domain.ViewFilter {
	return m.filter
}

// Cursor returns the index of the highlighted post in the visible list.
func (m Model) Cursor() int {
	return m.cursor
}

// IsInDetailView reports whether a single post is open.
func (m Model) IsInDetailView() bool {
	return m.detail
}

// IsConfirming reports whether a delete confirmation is pending.
func (m Model) IsConfirming() bool {
	return m.confirm
}

// SelectedPost returns the highlighted post, if any.
func (m Model) SelectedPost() (domain.Post, bool) {
	visible := m.Visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return domain.Post{}, false
	}
	return visible[m.cursor], true
}

// CanClear reports whether the clear-feed action is offered, which the
// saved view never does.
func (m Model) CanClear() bool {
	return m.filter != domain.ViewSaved && len(m.Visible()) > 0
}
