package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCaption indicates the user submitted a blank caption.
	ErrEmptyCaption = errors.New("caption cannot be empty")

	// ErrMissingImage indicates a post was submitted without a cropped image.
	ErrMissingImage = errors.New("crop the image before posting")

	// ErrMissingCropArea indicates rendering was requested before a crop was committed.
	ErrMissingCropArea = errors.New("crop area is not set")

	// ErrInvalidCropArea indicates the crop rectangle has no usable pixels.
	ErrInvalidCropArea = errors.New("crop area is empty or outside the image")

	// ErrInvalidImage indicates the source could not be fetched or decoded.
	ErrInvalidImage = errors.New("image could not be loaded")

	// ErrPersistence indicates a mutation was applied in memory but not saved.
	ErrPersistence = errors.New("changes were not saved")
)

// IsValidation reports whether err is a user-correctable input error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyCaption) ||
		errors.Is(err, ErrMissingImage) ||
		errors.Is(err, ErrMissingCropArea) ||
		errors.Is(err, ErrInvalidCropArea)
}

// LoadError wraps a failure to fetch or decode a source image.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("loading image: %v", e.Err)
	}
	return fmt.Sprintf("loading image %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is makes every LoadError match ErrInvalidImage.
func (e *LoadError) Is(target error) bool { return target == ErrInvalidImage }

// PersistError reports that the post collection could not be written back.
// The in-memory collection already reflects the mutation named by Op.
type PersistError struct {
	Op  string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("%s: %v (%v)", e.Op, ErrPersistence, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// Is makes every PersistError match ErrPersistence.
func (e *PersistError) Is(target error) bool { return target == ErrPersistence }
