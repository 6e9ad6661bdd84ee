package app

import (
	"context"
	"image"

	"github.com/CrestNiraj12/flick/domain"
)

// ImageLoader decodes a source image from a file path, data URI or URL.
// Failures are *domain.LoadError values.
type ImageLoader interface {
	Load(ctx context.Context, ref string) (image.Image, error)
}

// CropRenderer draws the committed crop of src onto the fixed output canvas
// and returns the encoded image.
type CropRenderer interface {
	Render(src image.Image, rect *domain.CropRect) (string, error)
}
