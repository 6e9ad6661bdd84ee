package tui

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/flick/domain"
	"github.com/CrestNiraj12/flick/infra/config"
	"github.com/CrestNiraj12/flick/infra/poststore"
	"github.com/CrestNiraj12/flick/tui/compose"
	"github.com/CrestNiraj12/flick/tui/feed"
)

type memKV struct {
	data    map[string]string
	failSet bool
}

func newMemKV() *memKV { return &memKV{data: map[string]string{}} }

func (m *memKV) Get(k string) (string, bool, error) {
	v, ok := m.data[k]
	return v, ok, nil
}

func (m *memKV) Set(k, v string) error {
	if m.failSet {
		return errors.New("disk full")
	}
	m.data[k] = v
	return nil
}

func (m *memKV) Delete(k string) error {
	delete(m.data, k)
	return nil
}

func newTestApp(t *testing.T, n int) (App, *memKV) {
	t.Helper()
	kv := newMemKV()
	i := 0
	store := poststore.New(kv, poststore.WithIDGenerator(func() string {
		i++
		return "p" + strconv.Itoa(i)
	}))
	for j := 0; j < n; j++ {
		if _, err := store.Create(domain.NewPost{Image: "data:image/jpeg;base64,AAAA", Caption: "post"}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return NewApp(Deps{Posts: store, Prefs: kv}), kv
}

func press(a App, s string) App {
	var msg tea.KeyMsg
	switch s {
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	m, _ := a.Update(msg)
	return m.(App)
}

func TestApp_ClearFeedRequiresConfirmation(t *testing.T) {
	a, kv := newTestApp(t, 2)

	a = press(a, "X")
	if !a.confirmClear {
		t.Fatalf("X should open the confirmation")
	}
	a = press(a, "n")
	if a.confirmClear || len(a.deps.Posts.Posts()) != 2 {
		t.Fatalf("n should cancel without clearing")
	}

	a = press(a, "X")
	a = press(a, "y")
	if len(a.deps.Posts.Posts()) != 0 {
		t.Fatalf("y should clear every post")
	}
	if _, ok := kv.data[poststore.PostsKey]; ok {
		t.Fatalf("clear should remove the persisted key")
	}
	if !strings.Contains(a.View(), "No posts yet. Create one!") {
		t.Fatalf("feed should show the empty state")
	}
}

func TestApp_ClearHiddenInSavedViewAndWhenEmpty(t *testing.T) {
	a, _ := newTestApp(t, 0)
	if a = press(a, "X"); a.confirmClear {
		t.Fatalf("empty feed must not offer clear")
	}

	a, _ = newTestApp(t, 1)
	a = press(a, "2")
	if a.feed.Filter() != domain.ViewSaved {
		t.Fatalf("2 should switch to saved view")
	}
	if a = press(a, "X"); a.confirmClear {
		t.Fatalf("saved view must not offer clear")
	}
}

func TestApp_TabCyclesViews(t *testing.T) {
	a, _ := newTestApp(t, 0)
	want := []domain.ViewFilter{domain.ViewSaved, domain.ViewLiked, domain.ViewAll}
	for _, w := range want {
		a = press(a, "tab")
		if a.feed.Filter() != w {
			t.Fatalf("expected %s, got %s", w, a.feed.Filter())
		}
	}
}

func TestApp_DarkModePersisted(t *testing.T) {
	a, kv := newTestApp(t, 0)
	a = press(a, "D")
	if !a.dark || !config.LoadDarkMode(kv) {
		t.Fatalf("D should enable and persist dark mode")
	}
	a = press(a, "D")
	if a.dark || config.LoadDarkMode(kv) {
		t.Fatalf("second D should disable dark mode")
	}
}

func TestApp_FeedRequestsReachStore(t *testing.T) {
	a, _ := newTestApp(t, 2)

	m, _ := a.Update(feed.LikePostMsg{ID: "p1"})
	a = m.(App)
	m, _ = a.Update(feed.SavePostMsg{ID: "p2"})
	a = m.(App)

	posts := a.deps.Posts.Posts()
	if !posts[1].Liked || !posts[0].Saved {
		t.Fatalf("expected p1 liked and p2 saved: %+v", posts)
	}

	m, _ = a.Update(feed.DeletePostMsg{ID: "p1"})
	a = m.(App)
	if len(a.feed.Visible()) != 1 {
		t.Fatalf("feed should reflect the deletion")
	}
}

func TestApp_PersistFailureIsWarning(t *testing.T) {
	a, kv := newTestApp(t, 1)
	kv.failSet = true

	m, _ := a.Update(feed.LikePostMsg{ID: "p1"})
	a = m.(App)
	if a.statusKind != statusWarn || !strings.Contains(a.status, "not saved") {
		t.Fatalf("expected a persistence warning, got %q", a.status)
	}
	if !a.feed.Visible()[0].Liked {
		t.Fatalf("in-memory state should still change")
	}
}

func TestApp_ComposeDoneCreatesPost(t *testing.T) {
	a, _ := newTestApp(t, 0)
	a = press(a, "n")
	if a.active != composeView {
		t.Fatalf("n should open the composer")
	}
	// Keys go to the composer while it is open.
	a = press(a, "q")
	if a.active != composeView {
		t.Fatalf("q should be typed, not quit")
	}

	m, _ := a.Update(compose.DoneMsg{Post: domain.NewPost{Image: "data:image/jpeg;base64,AAAA", Caption: "hello"}})
	a = m.(App)
	if a.active != feedView {
		t.Fatalf("done should return to the feed")
	}
	posts := a.feed.Visible()
	if len(posts) != 1 || posts[0].Caption != "hello" {
		t.Fatalf("expected the new post in the feed: %+v", posts)
	}
	if a.status != "Post created!" {
		t.Fatalf("unexpected status %q", a.status)
	}
}

func TestApp_ComposeCancelled(t *testing.T) {
	a, _ := newTestApp(t, 0)
	a = press(a, "n")
	m, _ := a.Update(compose.DoneMsg{Cancelled: true})
	a = m.(App)
	if a.active != feedView || len(a.deps.Posts.Posts()) != 0 {
		t.Fatalf("cancel should return to the feed without creating")
	}
}

func TestApp_QuitOnlyFromFeedList(t *testing.T) {
	a, _ := newTestApp(t, 1)
	a = press(a, "enter")
	if _, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}); cmd != nil {
		t.Fatalf("q in the detail view should not quit")
	}
	a = press(a, "esc")
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("q should quit from the feed list")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected QuitMsg")
	}
}

func TestApp_RejectedPostIsWarning(t *testing.T) {
	a, _ := newTestApp(t, 0)
	a = press(a, "n")

	m, _ := a.Update(compose.DoneMsg{Post: domain.NewPost{Image: "data:image/jpeg;base64,AAAA", Caption: "   "}})
	a = m.(App)
	if a.statusKind != statusWarn || !strings.Contains(a.status, "Post not created") {
		t.Fatalf("expected a validation warning, got kind=%v %q", a.statusKind, a.status)
	}
	if len(a.deps.Posts.Posts()) != 0 {
		t.Fatalf("invalid post must not be stored")
	}
}
