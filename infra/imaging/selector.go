package imaging

import (
	"image"
	"math"

	"github.com/CrestNiraj12/flick/domain"
)

// Crop box limits, matching the web cropper's zoom slider.
const (
	CropAspect = float64(domain.OutputWidth) / float64(domain.OutputHeight)
	MinZoom    = 1.0
	MaxZoom    = 3.0
	ZoomStep   = 0.1

	// panFraction is how far one pan step moves, relative to the box size.
	panFraction = 0.05
)

// Selector is the interactive crop box: a 4:5 rectangle that can be zoomed
// and panned inside the source image. At zoom 1 it is the largest 4:5
// rectangle that fits.
type Selector struct {
	imgW, imgH float64
	zoom       float64
	cx, cy     float64
	committed  *domain.CropRect
}

// NewSelector centres a zoom-1 box on an image with the given bounds.
func NewSelector(bounds image.Rectangle) Selector {
	s := Selector{
		imgW: float64(bounds.Dx()),
		imgH: float64(bounds.Dy()),
		zoom: MinZoom,
	}
	s.cx = s.imgW / 2
	s.cy = s.imgH / 2
	return s
}

// Zoom returns the current zoom factor.
func (s Selector) Zoom() float64 { return s.zoom }

// ZoomIn enlarges the image (shrinks the box) by one step.
func (s *Selector) ZoomIn() { s.SetZoom(s.zoom + ZoomStep) }

// ZoomOut shrinks the image (grows the box) by one step.
func (s *Selector) ZoomOut() { s.SetZoom(s.zoom - ZoomStep) }

// SetZoom clamps z to [MinZoom, MaxZoom] and keeps the box inside the image.
func (s *Selector) SetZoom(z float64) {
	z = math.Round(z*10) / 10
	s.zoom = min(max(z, MinZoom), MaxZoom)
	s.clamp()
}

// Pan moves the box by whole steps; positive dx moves right, dy down.
func (s *Selector) Pan(dx, dy int) {
	w, h := s.size()
	s.cx += float64(dx) * w * panFraction
	s.cy += float64(dy) * h * panFraction
	s.clamp()
}

func (s Selector) size() (float64, float64) {
	if s.imgW <= 0 || s.imgH <= 0 {
		return 0, 0
	}
	w, h := s.imgW, s.imgH
	if s.imgW/s.imgH > CropAspect {
		w = s.imgH * CropAspect
	} else {
		h = s.imgW / CropAspect
	}
	return w / s.zoom, h / s.zoom
}

func (s *Selector) clamp() {
	w, h := s.size()
	s.cx = min(max(s.cx, w/2), s.imgW-w/2)
	s.cy = min(max(s.cy, h/2), s.imgH-h/2)
}

// Rect is the current box in source pixel coordinates.
func (s Selector) Rect() domain.CropRect {
	w, h := s.size()
	if w <= 0 || h <= 0 {
		return domain.CropRect{}
	}
	rw := max(int(math.Round(w)), 1)
	rh := max(int(math.Round(h)), 1)
	x := int(math.Round(s.cx - w/2))
	y := int(math.Round(s.cy - h/2))
	x = min(max(x, 0), max(int(s.imgW)-rw, 0))
	y = min(max(y, 0), max(int(s.imgH)-rh, 0))
	return domain.CropRect{X: x, Y: y, Width: rw, Height: rh}
}

// Commit records a crop-complete event for the current box and returns it.
// An image with no pixels commits nothing.
func (s *Selector) Commit() *domain.CropRect {
	r := s.Rect()
	if r.Empty() {
		s.committed = nil
		return nil
	}
	s.committed = &r
	return s.Committed()
}

// Committed returns a copy of the last committed box, or nil.
func (s Selector) Committed() *domain.CropRect {
	if s.committed == nil {
		return nil
	}
	r := *s.committed
	return &r
}
