package feed

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/flick/domain"
	"github.com/CrestNiraj12/flick/infra/imaging"
)

func thumbKey(id string, w, h int) string {
	return id + "@" + strconv.Itoa(w) + "x" + strconv.Itoa(h)
}

// ensureThumbnailsCmd schedules previews for the cards on screen and, in the
// detail view, the large preview of the open post.
func (m *Model) ensureThumbnailsCmd() tea.Cmd {
	visible := m.Visible()
	if len(visible) == 0 {
		return nil
	}
	idle := len(m.loading) == 0
	var cmds []tea.Cmd
	want := func(p domain.Post, w, h int) {
		k := thumbKey(p.ID, w, h)
		if _, ok := m.thumbs[k]; ok || m.loading[k] {
			return
		}
		m.loading[k] = true
		cmds = append(cmds, renderThumbnail(k, p.Image, w, h))
	}

	if m.detail {
		if p, ok := m.SelectedPost(); ok {
			want(p, detailThumbW, detailThumbH)
		}
	} else {
		end := min(len(visible), m.start+m.pageSize())
		for i := m.start; i < end; i++ {
			want(visible[i], cardThumbW, cardThumbH)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	// The placeholder spinner only ticks while previews are rendering.
	if idle {
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

func renderThumbnail(key, dataURI string, w, h int) tea.Cmd {
	return func() tea.Msg {
		img, err := imaging.DecodeDataURI(dataURI)
		if err != nil {
			return thumbnailLoadedMsg{Key: key}
		}
		return thumbnailLoadedMsg{Key: key, Preview: imaging.Thumbnail(img, w, h)}
	}
}

// prune drops previews of posts that no longer exist.
func (m *Model) prune() {
	alive := make(map[string]bool, len(m.posts))
	for _, p := range m.posts {
		for _, k := range []string{
			thumbKey(p.ID, cardThumbW, cardThumbH),
			thumbKey(p.ID, detailThumbW, detailThumbH),
		} {
			alive[k] = true
		}
	}
	for k := range m.thumbs {
		if !alive[k] {
			delete(m.thumbs, k)
		}
	}
}
