package compose

import (
	"context"
	"errors"
	"image"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/flick/app"
	"github.com/CrestNiraj12/flick/domain"
	"github.com/CrestNiraj12/flick/infra/imaging"
)

// Update handles messages for the compose dialog.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sourceLoadedMsg:
		return m.handleSourceLoaded(msg)

	case cropRenderedMsg:
		if msg.seq != m.flow.Seq() {
			return m, nil
		}
		m.rendering = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		if err := m.flow.CropRendered(msg.seq, msg.encoded); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		return m, m.caption.Focus()

	case editorFinishedMsg:
		if msg.err != nil {
			msg.session.Discard()
			m.err = msg.err
			return m, nil
		}
		caption, err := msg.session.Caption()
		if err != nil {
			m.err = err
			return m, nil
		}
		m.caption.SetValue(caption)
		m.caption.CursorEnd()
		return m, nil

	case spinner.TickMsg:
		if m.flow.State() != app.FlowLoading && !m.rendering {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Back) {
			return m.back()
		}
		switch m.flow.State() {
		case app.FlowIdle:
			return m.updateSource(msg)
		case app.FlowCropping:
			return m.updateCrop(msg)
		case app.FlowCropped:
			return m.updateCaption(msg)
		}
		return m, nil
	}

	// Blink and other input messages go to the focused field.
	return m.updateInputs(msg)
}

// back cancels an in-flight load, otherwise closes the dialog.
func (m Model) back() (Model, tea.Cmd) {
	if m.flow.State() == app.FlowLoading {
		m.stopLoad()
		m.flow.Cancel()
		m.source.Focus()
		return m, nil
	}
	m.stopLoad()
	m.flow.Cancel()
	return m, func() tea.Msg { return DoneMsg{Cancelled: true} }
}

func (m *Model) stopLoad() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

func (m Model) updateSource(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Open) {
		seq, err := m.flow.SelectSource(m.source.Value())
		if err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.source.Blur()
		ctx, cancel := context.WithCancel(context.Background())
		m.cancel = cancel
		return m, tea.Batch(m.spinner.Tick, loadSource(ctx, m.deps.Loader, seq, m.flow.Source()))
	}
	var cmd tea.Cmd
	m.source, cmd = m.source.Update(msg)
	return m, cmd
}

func loadSource(ctx context.Context, loader app.ImageLoader, seq int, ref string) tea.Cmd {
	return func() tea.Msg {
		img, err := loader.Load(ctx, ref)
		return sourceLoadedMsg{seq: seq, img: img, err: err}
	}
}

func (m Model) handleSourceLoaded(msg sourceLoadedMsg) (Model, tea.Cmd) {
	if msg.seq != m.flow.Seq() || m.flow.State() != app.FlowLoading {
		return m, nil
	}
	m.cancel = nil
	if msg.err == nil && msg.img == nil {
		msg.err = &domain.LoadError{Source: m.flow.Source(), Err: errors.New("empty image")}
	}
	if msg.err != nil {
		m.flow.LoadFailed(msg.seq)
		m.err = msg.err
		return m, m.source.Focus()
	}
	m.flow.SourceLoaded(msg.seq, msg.img)
	m.selector = imaging.NewSelector(msg.img.Bounds())
	m.refreshPreview()
	m.err = nil
	return m, nil
}

func (m Model) updateCrop(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.rendering {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Up):
		m.selector.Pan(0, -1)
	case key.Matches(msg, m.keys.Down):
		m.selector.Pan(0, 1)
	case key.Matches(msg, m.keys.Left):
		m.selector.Pan(-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.selector.Pan(1, 0)
	case key.Matches(msg, m.keys.ZoomIn):
		m.selector.ZoomIn()
	case key.Matches(msg, m.keys.ZoomOut):
		m.selector.ZoomOut()
	case key.Matches(msg, m.keys.Repick):
		return m.repick()
	case key.Matches(msg, m.keys.Open):
		rect := m.selector.Commit()
		if err := m.flow.CommitCrop(rect); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.rendering = true
		return m, tea.Batch(m.spinner.Tick, renderCrop(m.deps.Renderer, m.flow.Seq(), m.flow.Image(), rect))
	default:
		return m, nil
	}
	m.refreshPreview()
	return m, nil
}

func renderCrop(r app.CropRenderer, seq int, img image.Image, rect *domain.CropRect) tea.Cmd {
	return func() tea.Msg {
		encoded, err := r.Render(img, rect)
		return cropRenderedMsg{seq: seq, encoded: encoded, err: err}
	}
}

func (m Model) updateCaption(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Repick):
		return m.repick()
	case key.Matches(msg, m.keys.Editor):
		if m.deps.Editor == nil {
			return m, nil
		}
		session, err := m.deps.Editor.Open(m.caption.Value())
		if err != nil {
			m.err = err
			return m, nil
		}
		return m, tea.ExecProcess(session.Cmd, func(err error) tea.Msg {
			return editorFinishedMsg{session: session, err: err}
		})
	case key.Matches(msg, m.keys.Open):
		in, err := m.flow.Submit(m.caption.Value())
		if err != nil {
			m.err = err
			return m, nil
		}
		m.flow.Reset()
		return m, func() tea.Msg { return DoneMsg{Post: in} }
	}
	var cmd tea.Cmd
	m.caption, cmd = m.caption.Update(msg)
	return m, cmd
}

// repick drops the loaded image and returns to source entry.
func (m Model) repick() (Model, tea.Cmd) {
	m.flow.Cancel()
	m.preview = ""
	m.rendering = false
	m.err = nil
	m.caption.Blur()
	return m, m.source.Focus()
}

func (m Model) updateInputs(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.flow.State() {
	case app.FlowIdle:
		m.source, cmd = m.source.Update(msg)
	case app.FlowCropped:
		m.caption, cmd = m.caption.Update(msg)
	}
	return m, cmd
}

func (m *Model) refreshPreview() {
	img := m.flow.Image()
	if img == nil {
		m.preview = ""
		return
	}
	r := m.selector.Rect()
	b := img.Bounds()
	m.preview = imaging.ThumbnailRect(img, image.Rect(
		b.Min.X+r.X, b.Min.Y+r.Y, b.Min.X+r.X+r.Width, b.Min.Y+r.Y+r.Height,
	), previewW, previewH)
}
