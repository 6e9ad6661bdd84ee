package app

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/CrestNiraj12/flick/domain"
)

// FlowState is a step of the post creation flow.
type FlowState int

const (
	FlowIdle FlowState = iota
	FlowLoading
	FlowCropping
	FlowCropped
	FlowSubmitted
)

func (s FlowState) String() string {
	switch s {
	case FlowLoading:
		return "loading"
	case FlowCropping:
		return "cropping"
	case FlowCropped:
		return "cropped"
	case FlowSubmitted:
		return "submitted"
	default:
		return "idle"
	}
}

// ErrInvalidTransition is returned when an action does not apply to the
// current step.
var ErrInvalidTransition = errors.New("action not available in this step")

// CreateFlow tracks one post being created:
//
//	Idle -> Loading -> Cropping -> Cropped -> Submitted -> Idle
//
// Cancel returns to Idle from any step. Each source selection gets a new
// sequence number so results of abandoned loads can be dropped.
type CreateFlow struct {
	state   FlowState
	seq     int
	source  string
	img     image.Image
	rect    *domain.CropRect
	encoded string
}

// State returns the current step.
func (f CreateFlow) State() FlowState { return f.state }

// Seq identifies the most recent source selection.
func (f CreateFlow) Seq() int { return f.seq }

// Source returns the reference passed to SelectSource.
func (f CreateFlow) Source() string { return f.source }

// Image returns the decoded source, nil before it has loaded.
func (f CreateFlow) Image() image.Image { return f.img }

// Rect returns the committed crop rectangle, nil until committed.
func (f CreateFlow) Rect() *domain.CropRect { return f.rect }

// Encoded returns the rendered post image, empty until cropped.
func (f CreateFlow) Encoded() string { return f.encoded }

// SelectSource starts loading a new source, discarding any previous one.
func (f *CreateFlow) SelectSource(ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return f.seq, &domain.LoadError{Err: errors.New("no image selected")}
	}
	if f.state == FlowSubmitted {
		return f.seq, fmt.Errorf("select source: %w", ErrInvalidTransition)
	}
	f.seq++
	f.state = FlowLoading
	f.source = ref
	f.img = nil
	f.rect = nil
	f.encoded = ""
	return f.seq, nil
}

// SourceLoaded moves to Cropping. Results for a stale seq are ignored and
// reported as false.
func (f *CreateFlow) SourceLoaded(seq int, img image.Image) bool {
	if seq != f.seq || f.state != FlowLoading || img == nil {
		return false
	}
	f.img = img
	f.state = FlowCropping
	return true
}

// LoadFailed returns to Idle so the user can pick another source.
func (f *CreateFlow) LoadFailed(seq int) bool {
	if seq != f.seq || f.state != FlowLoading {
		return false
	}
	f.reset()
	return true
}

// CommitCrop records the crop-complete rectangle. Rendering happens
// separately; see CropRendered.
func (f *CreateFlow) CommitCrop(rect *domain.CropRect) error {
	if f.state != FlowCropping {
		return fmt.Errorf("commit crop: %w", ErrInvalidTransition)
	}
	if rect == nil {
		return domain.ErrMissingCropArea
	}
	if rect.Empty() {
		return domain.ErrInvalidCropArea
	}
	r := *rect
	f.rect = &r
	return nil
}

// CropRendered stores the rendered image and moves to Cropped.
func (f *CreateFlow) CropRendered(seq int, encoded string) error {
	if seq != f.seq || f.state != FlowCropping {
		return fmt.Errorf("crop rendered: %w", ErrInvalidTransition)
	}
	if f.rect == nil {
		return domain.ErrMissingCropArea
	}
	if encoded == "" {
		return domain.ErrMissingImage
	}
	f.encoded = encoded
	f.state = FlowCropped
	return nil
}

// Submit validates the caption and cropped image and returns the input for
// the post store. On a validation error the flow stays where it is.
func (f *CreateFlow) Submit(caption string) (domain.NewPost, error) {
	in := domain.NewPost{Image: f.encoded, Caption: caption}
	if f.state != FlowCropped {
		in.Image = ""
	}
	if err := in.Validate(); err != nil {
		return domain.NewPost{}, err
	}
	f.state = FlowSubmitted
	return in, nil
}

// Reset returns to Idle after a successful submit.
func (f *CreateFlow) Reset() {
	f.reset()
}

// Cancel discards the source and crop state from any step.
func (f *CreateFlow) Cancel() {
	f.reset()
}

func (f *CreateFlow) reset() {
	f.state = FlowIdle
	f.source = ""
	f.img = nil
	f.rect = nil
	f.encoded = ""
}
