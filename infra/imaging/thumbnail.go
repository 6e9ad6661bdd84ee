package imaging

import (
	"image"
	"strconv"
	"strings"

	"golang.org/x/image/draw"
)

// Thumbnail renders img as w x h terminal cells of true-colour half blocks.
// Each cell shows two source rows: the foreground is the top pixel and the
// background the bottom one.
func Thumbnail(img image.Image, w, h int) string {
	if img == nil {
		return ""
	}
	return ThumbnailRect(img, img.Bounds(), w, h)
}

// ThumbnailRect is Thumbnail for the part of img inside r, used to preview a
// crop box while it moves.
func ThumbnailRect(img image.Image, r image.Rectangle, w, h int) string {
	if img == nil {
		return ""
	}
	b := r.Intersect(img.Bounds())
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return ""
	}
	w = max(w, 4)
	h = max(h, 2)

	small := image.NewRGBA(image.Rect(0, 0, w, h*2))
	draw.ApproxBiLinear.Scale(small, small.Bounds(), img, b, draw.Src, nil)

	var out strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			top := small.RGBAAt(x, y*2)
			bottom := small.RGBAAt(x, y*2+1)
			out.WriteString("\x1b[38;2;")
			writeRGB(&out, top.R, top.G, top.B)
			out.WriteString(";48;2;")
			writeRGB(&out, bottom.R, bottom.G, bottom.B)
			out.WriteString("m▀\x1b[0m")
		}
		if y < h-1 {
			out.WriteByte('\n')
		}
	}
	return out.String()
}

func writeRGB(b *strings.Builder, r, g, bl uint8) {
	b.WriteString(strconv.Itoa(int(r)))
	b.WriteByte(';')
	b.WriteString(strconv.Itoa(int(g)))
	b.WriteByte(';')
	b.WriteString(strconv.Itoa(int(bl)))
}
