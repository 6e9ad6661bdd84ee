package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"math"

	"golang.org/x/image/draw"

	"github.com/CrestNiraj12/flick/domain"
)

// DefaultQuality matches the browser canvas JPEG default (0.92).
const DefaultQuality = 92

// DataURIPrefix starts every encoded post image.
const DataURIPrefix = "data:image/jpeg;base64,"

// Renderer draws a crop of the source onto the fixed 400x500 canvas.
type Renderer struct {
	quality int
}

// NewRenderer creates a Renderer encoding at the given JPEG quality (1-100).
// Out-of-range values fall back to DefaultQuality.
func NewRenderer(quality int) *Renderer {
	if quality < 1 || quality > 100 {
		quality = DefaultQuality
	}
	return &Renderer{quality: quality}
}

// Render stretches rect of src to exactly OutputWidth x OutputHeight and
// returns it as a JPEG data URI. rect is relative to src.Bounds().Min.
// Parts of rect outside the source stay black, like a canvas drawImage.
func (r *Renderer) Render(src image.Image, rect *domain.CropRect) (string, error) {
	if src == nil {
		return "", &domain.LoadError{Err: errors.New("no source image")}
	}
	if rect == nil {
		return "", domain.ErrMissingCropArea
	}
	if rect.Empty() {
		return "", domain.ErrInvalidCropArea
	}

	b := src.Bounds()
	sr := image.Rect(b.Min.X+rect.X, b.Min.Y+rect.Y, b.Min.X+rect.X+rect.Width, b.Min.Y+rect.Y+rect.Height)
	clipped := sr.Intersect(b)
	if clipped.Empty() {
		return "", domain.ErrInvalidCropArea
	}

	canvas := image.NewRGBA(image.Rect(0, 0, domain.OutputWidth, domain.OutputHeight))
	draw.Draw(canvas, canvas.Bounds(), image.Black, image.Point{}, draw.Src)

	sx := float64(domain.OutputWidth) / float64(rect.Width)
	sy := float64(domain.OutputHeight) / float64(rect.Height)
	dr := image.Rect(
		int(math.Round(float64(clipped.Min.X-sr.Min.X)*sx)),
		int(math.Round(float64(clipped.Min.Y-sr.Min.Y)*sy)),
		int(math.Round(float64(clipped.Max.X-sr.Min.X)*sx)),
		int(math.Round(float64(clipped.Max.Y-sr.Min.Y)*sy)),
	).Intersect(canvas.Bounds())
	if !dr.Empty() {
		draw.CatmullRom.Scale(canvas, dr, src, clipped, draw.Over, nil)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: r.quality}); err != nil {
		return "", fmt.Errorf("encoding jpeg: %w", err)
	}
	return DataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
