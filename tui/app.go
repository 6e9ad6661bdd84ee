package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/CrestNiraj12/flick/app"
	"github.com/CrestNiraj12/flick/domain"
	"github.com/CrestNiraj12/flick/infra/config"
	"github.com/CrestNiraj12/flick/infra/editor"
	"github.com/CrestNiraj12/flick/infra/logging"
	"github.com/CrestNiraj12/flick/tui/common"
	"github.com/CrestNiraj12/flick/tui/compose"
	"github.com/CrestNiraj12/flick/tui/feed"
)

// sidebarWidth is the rendered width of the navigation column.
const sidebarWidth = 28

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Posts    app.PostService
	Prefs    app.KeyValueStore
	Loader   app.ImageLoader
	Renderer app.CropRenderer
	Editor   *editor.EnvEditor
	Log      *log.Logger
	DarkMode bool
}

type activeView int

const (
	feedView activeView = iota
	composeView
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusWarn
	statusError
)

// App is the root Bubble Tea model. It owns the sidebar and routes between
// the feed and the composer.
type App struct {
	deps         Deps
	active       activeView
	feed         feed.Model
	compose      compose.Model
	keys         common.KeyMap
	theme        common.Theme
	dark         bool
	confirmClear bool
	width        int
	height       int

	status     string
	statusKind statusKind
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	if deps.Log == nil {
		deps.Log = logging.Discard()
	}
	return App{
		deps:   deps,
		active: feedView,
		feed:   feed.New(deps.Posts.Posts(), deps.DarkMode),
		keys:   common.DefaultKeyMap(),
		theme:  common.NewTheme(deps.DarkMode),
		dark:   deps.DarkMode,
	}
}

// Init delegates to the feed.
func (a App) Init() tea.Cmd {
	return a.feed.Init()
}

// Update handles messages and routes to the active sub-model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		var cmd tea.Cmd
		a.feed, cmd = a.feed.Update(tea.WindowSizeMsg{
			Width:  max(msg.Width-sidebarWidth, 20),
			Height: msg.Height,
		})
		return a, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		if a.active == composeView {
			break
		}
		if a.confirmClear {
			return a.updateClearConfirm(msg)
		}
		if a.feed.IsInDetailView() {
			break
		}
		if next, cmd, ok := a.handleFeedKey(msg); ok {
			return next, cmd
		}

	case feed.LikePostMsg:
		posts, err := a.deps.Posts.ToggleLiked(msg.ID)
		return a.applyPosts(posts, err, "")

	case feed.SavePostMsg:
		posts, err := a.deps.Posts.ToggleSaved(msg.ID)
		return a.applyPosts(posts, err, "")

	case feed.DeletePostMsg:
		posts, err := a.deps.Posts.Delete(msg.ID)
		return a.applyPosts(posts, err, "Post deleted.")

	case compose.DoneMsg:
		a.active = feedView
		if msg.Cancelled {
			a.setStatus(statusInfo, "Cancelled.")
			return a, nil
		}
		post, err := a.deps.Posts.Create(msg.Post)
		if err != nil && domain.IsValidation(err) {
			a.deps.Log.Warn("post rejected", "err", err)
			a.setStatus(statusWarn, "Post not created: "+err.Error())
			return a, nil
		}
		if err != nil && !errors.Is(err, domain.ErrPersistence) {
			a.deps.Log.Error("create post", "err", err)
			a.setStatus(statusError, "Error: "+err.Error())
			return a, nil
		}
		a.deps.Log.Info("post created", "id", post.ID)
		return a.applyPosts(a.deps.Posts.Posts(), err, "Post created!")
	}

	// Delegate to the active sub-model.
	switch a.active {
	case composeView:
		updated, cmd := a.compose.Update(msg)
		a.compose = updated
		if _, ok := msg.(tea.KeyMsg); ok {
			return a, cmd
		}
		// Thumbnails and spinner ticks keep flowing to the feed underneath.
		var feedCmd tea.Cmd
		a.feed, feedCmd = a.feed.Update(msg)
		return a, tea.Batch(cmd, feedCmd)
	default:
		updated, cmd := a.feed.Update(msg)
		a.feed = updated
		return a, cmd
	}
}

// handleFeedKey runs the sidebar shortcuts. ok is false when the key belongs
// to the feed itself.
func (a App) handleFeedKey(msg tea.KeyMsg) (App, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit, true

	case key.Matches(msg, a.keys.New):
		a.active = composeView
		a.status = ""
		a.compose = compose.New(compose.Deps{
			Loader:   a.deps.Loader,
			Renderer: a.deps.Renderer,
			Editor:   a.deps.Editor,
		}, a.dark)
		return a, a.compose.Init(), true

	case key.Matches(msg, a.keys.NextView):
		return a.setView(a.feed.Filter().Next())
	case key.Matches(msg, a.keys.ViewHome):
		return a.setView(domain.ViewAll)
	case key.Matches(msg, a.keys.ViewSaved):
		return a.setView(domain.ViewSaved)
	case key.Matches(msg, a.keys.ViewLiked):
		return a.setView(domain.ViewLiked)

	case key.Matches(msg, a.keys.ToggleDark):
		a.dark = !a.dark
		a.theme = common.NewTheme(a.dark)
		a.feed, _ = a.feed.Update(feed.ThemeChangedMsg{Dark: a.dark})
		if err := config.SaveDarkMode(a.deps.Prefs, a.dark); err != nil {
			a.deps.Log.Warn("save dark mode", "err", err)
			a.setStatus(statusWarn, "Warning: "+err.Error())
		}
		return a, nil, true

	case key.Matches(msg, a.keys.ClearFeed):
		if !a.feed.CanClear() {
			return a, nil, true
		}
		a.confirmClear = true
		return a, nil, true
	}
	return a, nil, false
}

func (a App) setView(f domain.ViewFilter) (App, tea.Cmd, bool) {
	var cmd tea.Cmd
	a.feed, cmd = a.feed.Update(feed.SetViewMsg{Filter: f})
	return a, cmd, true
}

func (a App) updateClearConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Confirm):
		a.confirmClear = false
		posts, err := a.deps.Posts.ClearAll()
		a.deps.Log.Info("feed cleared")
		return a.applyPosts(posts, err, "Feed cleared.")
	case key.Matches(msg, a.keys.Deny):
		a.confirmClear = false
	}
	return a, nil
}

// applyPosts pushes a new collection to the feed. A persistence error is a
// warning: the change is kept in memory.
func (a App) applyPosts(posts []domain.Post, err error, ok string) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.feed, cmd = a.feed.Update(feed.PostsChangedMsg{Posts: posts})
	switch {
	case err != nil && errors.Is(err, domain.ErrPersistence):
		a.deps.Log.Warn("persist posts", "err", err)
		a.setStatus(statusWarn, "Warning: "+err.Error())
	case err != nil:
		a.deps.Log.Error("update posts", "err", err)
		a.setStatus(statusError, "Error: "+err.Error())
	case ok != "":
		a.setStatus(statusInfo, ok)
	default:
		a.status = ""
	}
	return a, cmd
}

func (a *App) setStatus(kind statusKind, s string) {
	a.statusKind = kind
	a.status = s
}

// View renders the sidebar next to the active sub-model.
func (a App) View() string {
	var main string
	switch a.active {
	case composeView:
		main = a.compose.View()
	default:
		main = a.feed.View()
	}
	if a.confirmClear {
		main = a.theme.Modal.Render(
			a.theme.Heading.Render("Clear Feed?") + "\n" +
				"Are you sure you want to delete all your posts?\n\n" +
				a.theme.Confirm.Render("y") + " yes, delete  " + a.theme.Muted.Render("n cancel"),
		)
	}

	s := lipgloss.JoinHorizontal(lipgloss.Top, a.sidebar(), "  ", main)
	if a.status != "" {
		style := a.theme.StatusBar
		switch a.statusKind {
		case statusWarn:
			style = style.Foreground(a.theme.Warning.GetForeground())
		case statusError:
			style = style.Foreground(a.theme.Error.GetForeground())
		}
		s += "\n" + style.Render(a.status)
	}
	return s
}

func (a App) sidebar() string {
	items := []struct {
		label  string
		filter domain.ViewFilter
		hint   string
	}{
		{"Home", domain.ViewAll, "1"},
		{"Saved Posts", domain.ViewSaved, "2"},
		{"Liked Posts", domain.ViewLiked, "3"},
	}

	var b strings.Builder
	b.WriteString(a.theme.AppTitle.Render("Flick"))
	b.WriteString("\n\n")
	for _, it := range items {
		style := a.theme.MenuInactive
		if it.filter == a.feed.Filter() && a.active == feedView {
			style = a.theme.MenuActive
		}
		b.WriteString(style.Render(it.hint + "  " + it.label))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(a.theme.CreateButton.Render("n  + Create Post"))
	b.WriteString("\n\n")

	mode := "D  Dark mode"
	if a.dark {
		mode = "D  Light mode"
	}
	b.WriteString(a.theme.MenuInactive.Render(mode))
	b.WriteString("\n")
	if a.active == feedView && a.feed.CanClear() {
		b.WriteString(a.theme.MenuInactive.Render("X  Clear feed"))
		b.WriteString("\n")
	}
	b.WriteString(a.theme.MenuInactive.Render("q  Quit"))

	h := max(a.height-2, 0)
	return a.theme.Sidebar.Height(h).Render(b.String())
}
