package compose

import (
	"context"
	"errors"
	"image"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/flick/app"
	"github.com/CrestNiraj12/flick/domain"
	"github.com/CrestNiraj12/flick/infra/editor"
)

type stubLoader struct {
	img image.Image
	err error
}

func (s stubLoader) Load(ctx context.Context, ref string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, &domain.LoadError{Source: ref, Err: err}
	}
	return s.img, s.err
}

type stubRenderer struct {
	rect *domain.CropRect
}

func (s *stubRenderer) Render(src image.Image, rect *domain.CropRect) (string, error) {
	s.rect = rect
	if rect == nil {
		return "", domain.ErrMissingCropArea
	}
	return "data:image/jpeg;base64,QUJD", nil
}

func newTestModel(loaderErr error) (Model, *stubRenderer) {
	r := &stubRenderer{}
	m := New(Deps{
		Loader:   stubLoader{img: image.NewRGBA(image.Rect(0, 0, 800, 600)), err: loaderErr},
		Renderer: r,
		Editor:   editor.NewEnvEditor(),
	}, false)
	return m, r
}

func keyPress(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

// selectSource submits ref and runs the load synchronously.
func selectSource(t *testing.T, m Model, ref string) Model {
	t.Helper()
	m.source.SetValue(ref)
	m, _ = m.Update(keyPress(tea.KeyEnter))
	if m.State() != app.FlowLoading {
		t.Fatalf("expected loading, got %s (err %v)", m.State(), m.Err())
	}
	msg := loadSource(context.Background(), m.deps.Loader, m.flow.Seq(), ref)()
	m, _ = m.Update(msg)
	return m
}

// crop commits the current box and delivers the render result.
func crop(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = m.Update(keyPress(tea.KeyEnter))
	if !m.IsRendering() {
		t.Fatalf("expected render to start (err %v)", m.Err())
	}
	msg := renderCrop(m.deps.Renderer, m.flow.Seq(), m.flow.Image(), m.flow.Rect())()
	m, _ = m.Update(msg)
	return m
}

func TestCompose_FullFlowProducesPost(t *testing.T) {
	m, r := newTestModel(nil)
	m = selectSource(t, m, "photo.png")
	if m.State() != app.FlowCropping {
		t.Fatalf("expected cropping, got %s", m.State())
	}

	m, _ = m.Update(runes("+"))
	m, _ = m.Update(runes("l"))
	if m.Selector().Zoom() != 1.1 {
		t.Fatalf("expected zoom 1.1, got %v", m.Selector().Zoom())
	}

	m = crop(t, m)
	if m.State() != app.FlowCropped {
		t.Fatalf("expected cropped, got %s (err %v)", m.State(), m.Err())
	}
	if r.rect == nil || r.rect.Height <= r.rect.Width {
		t.Fatalf("expected a portrait committed rect, got %+v", r.rect)
	}

	m.caption.SetValue("  sunset  ")
	m, cmd := m.Update(keyPress(tea.KeyEnter))
	if cmd == nil {
		t.Fatalf("expected done command")
	}
	done, ok := cmd().(DoneMsg)
	if !ok || done.Cancelled {
		t.Fatalf("expected submitted DoneMsg, got %#v", done)
	}
	if done.Post.Image != "data:image/jpeg;base64,QUJD" || done.Post.Caption != "  sunset  " {
		t.Fatalf("unexpected post: %+v", done.Post)
	}
	if m.State() != app.FlowIdle {
		t.Fatalf("flow should reset after submit, got %s", m.State())
	}
}

func TestCompose_EmptyCaptionRejected(t *testing.T) {
	m, _ := newTestModel(nil)
	m = crop(t, selectSource(t, m, "photo.png"))

	m.caption.SetValue("   ")
	m, cmd := m.Update(keyPress(tea.KeyEnter))
	if cmd != nil {
		t.Fatalf("blank caption must not submit")
	}
	if !errors.Is(m.Err(), domain.ErrEmptyCaption) {
		t.Fatalf("expected ErrEmptyCaption, got %v", m.Err())
	}
	if m.State() != app.FlowCropped {
		t.Fatalf("flow should stay cropped, got %s", m.State())
	}
}

func TestCompose_EmptySourceRejected(t *testing.T) {
	m, _ := newTestModel(nil)
	m, _ = m.Update(keyPress(tea.KeyEnter))
	if m.State() != app.FlowIdle {
		t.Fatalf("expected idle, got %s", m.State())
	}
	if !errors.Is(m.Err(), domain.ErrInvalidImage) {
		t.Fatalf("expected ErrInvalidImage, got %v", m.Err())
	}
}

func TestCompose_LoadFailureReturnsToIdle(t *testing.T) {
	m, _ := newTestModel(&domain.LoadError{Source: "x", Err: errors.New("not an image")})
	m = selectSource(t, m, "x")
	if m.State() != app.FlowIdle {
		t.Fatalf("expected idle after failure, got %s", m.State())
	}
	if !errors.Is(m.Err(), domain.ErrInvalidImage) {
		t.Fatalf("expected ErrInvalidImage, got %v", m.Err())
	}
}

func TestCompose_EscWhileLoadingCancels(t *testing.T) {
	m, _ := newTestModel(nil)
	m.source.SetValue("slow.png")
	m, _ = m.Update(keyPress(tea.KeyEnter))
	seq := m.flow.Seq()

	m, cmd := m.Update(keyPress(tea.KeyEsc))
	if cmd != nil {
		t.Fatalf("esc while loading should not close the dialog")
	}
	if m.State() != app.FlowIdle {
		t.Fatalf("expected idle, got %s", m.State())
	}

	// A late result for the abandoned load is dropped.
	m, _ = m.Update(sourceLoadedMsg{seq: seq, img: image.NewRGBA(image.Rect(0, 0, 10, 10))})
	if m.State() != app.FlowIdle {
		t.Fatalf("stale load must be ignored, got %s", m.State())
	}
}

func TestCompose_StaleLoadIgnoredAfterNewSelection(t *testing.T) {
	m, _ := newTestModel(nil)
	m.source.SetValue("first.png")
	m, _ = m.Update(keyPress(tea.KeyEnter))
	first := m.flow.Seq()
	m, _ = m.Update(keyPress(tea.KeyEsc))

	m.source.SetValue("second.png")
	m, _ = m.Update(keyPress(tea.KeyEnter))

	m, _ = m.Update(sourceLoadedMsg{seq: first, img: image.NewRGBA(image.Rect(0, 0, 10, 10))})
	if m.State() != app.FlowLoading {
		t.Fatalf("first result must not complete the second load, got %s", m.State())
	}
}

func TestCompose_EscClosesOutsideLoading(t *testing.T) {
	m, _ := newTestModel(nil)
	m = selectSource(t, m, "photo.png")

	_, cmd := m.Update(keyPress(tea.KeyEsc))
	if cmd == nil {
		t.Fatalf("expected close command")
	}
	if done, ok := cmd().(DoneMsg); !ok || !done.Cancelled {
		t.Fatalf("expected cancelled DoneMsg, got %#v", done)
	}
}

func TestCompose_RepickReturnsToSource(t *testing.T) {
	m, _ := newTestModel(nil)
	m = selectSource(t, m, "photo.png")

	m, _ = m.Update(keyPress(tea.KeyCtrlR))
	if m.State() != app.FlowIdle {
		t.Fatalf("expected idle after repick, got %s", m.State())
	}
	if m.flow.Image() != nil {
		t.Fatalf("repick should drop the loaded image")
	}
}

func TestCompose_EditorResultFillsCaption(t *testing.T) {
	m, _ := newTestModel(nil)
	m = crop(t, selectSource(t, m, "photo.png"))
	m.caption.SetValue("draft")

	session, err := m.deps.Editor.Open(m.caption.Value())
	if err != nil {
		t.Fatalf("open editor: %v", err)
	}
	if err := os.WriteFile(session.Path(), []byte("<!-- hint -->\nfrom\n the editor\n"), 0o600); err != nil {
		t.Fatalf("write caption: %v", err)
	}
	m, _ = m.Update(editorFinishedMsg{session: session})
	if got := m.caption.Value(); got != "from the editor" {
		t.Fatalf("expected caption from editor, got %q", got)
	}
	if _, err := os.Stat(session.Path()); !os.IsNotExist(err) {
		t.Fatalf("temp file should be removed")
	}
}

func TestCompose_EmptyEditorResultKeepsCaption(t *testing.T) {
	m, _ := newTestModel(nil)
	m = crop(t, selectSource(t, m, "photo.png"))
	m.caption.SetValue("draft")

	session, err := m.deps.Editor.Open(m.caption.Value())
	if err != nil {
		t.Fatalf("open editor: %v", err)
	}
	if err := os.WriteFile(session.Path(), []byte("<!-- hint -->\n\n"), 0o600); err != nil {
		t.Fatalf("write caption: %v", err)
	}
	m, _ = m.Update(editorFinishedMsg{session: session})
	if got := m.caption.Value(); got != "draft" {
		t.Fatalf("empty edit should keep the caption, got %q", got)
	}
}

func TestCompose_ViewShowsStep(t *testing.T) {
	m, _ := newTestModel(nil)
	if !strings.Contains(m.View(), "Image:") {
		t.Fatalf("idle view should show the source field")
	}
	m = selectSource(t, m, "photo.png")
	if !strings.Contains(m.View(), "Zoom 1.0") {
		t.Fatalf("crop view should show zoom:\n%s", m.View())
	}
}

func TestCompose_LoadingViewShortensDataURI(t *testing.T) {
	m, _ := newTestModel(nil)
	m.source.SetValue("data:image/png;base64," + strings.Repeat("A", 100000))
	m, _ = m.Update(keyPress(tea.KeyEnter))
	if m.State() != app.FlowLoading {
		t.Fatalf("expected loading, got %s", m.State())
	}

	out := m.View()
	if len(out) > 2000 {
		t.Fatalf("loading view should stay short, got %d bytes", len(out))
	}
	if !strings.Contains(out, "data:image/png;base64") {
		t.Fatalf("loading view should name the source kind:\n%s", out)
	}
}

func TestCompose_LoadingViewTruncatesLongPath(t *testing.T) {
	m, _ := newTestModel(nil)
	m.source.SetValue("/photos/" + strings.Repeat("nested/", 40) + "sunset.png")
	m, _ = m.Update(keyPress(tea.KeyEnter))

	if strings.Contains(m.View(), "sunset.png") {
		t.Fatalf("long paths should be truncated in the loading view")
	}
}
