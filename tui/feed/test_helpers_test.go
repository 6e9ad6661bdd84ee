package feed

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/flick/domain"
)

func pngDataURI(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func makePost(id string, liked, saved bool) domain.Post {
	return domain.Post{
		ID:        id,
		Image:     "data:image/jpeg;base64,AAAA",
		Caption:   "caption " + id,
		Timestamp: "2025-03-01T12:00:00Z",
		Liked:     liked,
		Saved:     saved,
	}
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func samplePosts() []domain.Post {
	return []domain.Post{
		makePost("a", true, false),
		makePost("b", false, true),
		makePost("c", true, true),
	}
}
