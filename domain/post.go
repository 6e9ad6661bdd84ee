package domain

import (
	"slices"
	"strings"
)

// Output canvas for every stored post image (4:5 portrait).
const (
	OutputWidth  = 400
	OutputHeight = 500
)

// Post is a single captioned photo in the feed.
type Post struct {
	ID        string `json:"id"`
	Image     string `json:"image"` // data:image/jpeg;base64,...
	Caption   string `json:"caption"`
	Timestamp string `json:"timestamp"` // RFC 3339 creation time
	Liked     bool   `json:"liked"`
	Saved     bool   `json:"saved"`
}

// NewPost is the user input needed to create a Post.
type NewPost struct {
	Image   string
	Caption string
}

// Validate checks the input without modifying it.
func (n NewPost) Validate() error {
	if n.Image == "" {
		return ErrMissingImage
	}
	if strings.TrimSpace(n.Caption) == "" {
		return ErrEmptyCaption
	}
	return nil
}

// CropRect is an axis-aligned region in source-image pixel coordinates.
type CropRect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Empty reports whether the rectangle covers no pixels.
func (r CropRect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// ViewFilter selects which subset of the collection is displayed.
type ViewFilter int

const (
	ViewAll ViewFilter = iota
	ViewSaved
	ViewLiked
)

func (f ViewFilter) String() string {
	switch f {
	case ViewSaved:
		return "saved"
	case ViewLiked:
		return "liked"
	default:
		return "all"
	}
}

// Title is the heading shown above the filtered list.
func (f ViewFilter) Title() string {
	switch f {
	case ViewSaved:
		return "Saved Posts"
	case ViewLiked:
		return "Liked Posts"
	default:
		return "Your Feed"
	}
}

// EmptyText is shown when the filtered list has no posts.
func (f ViewFilter) EmptyText() string {
	switch f {
	case ViewSaved:
		return "No saved posts yet."
	case ViewLiked:
		return "You haven't liked any posts yet."
	default:
		return "No posts yet. Create one!"
	}
}

// Next cycles all -> saved -> liked -> all.
func (f ViewFilter) Next() ViewFilter {
	return (f + 1) % 3
}

// ParseViewFilter maps a view name to a filter. Unknown names select ViewAll.
func ParseViewFilter(s string) ViewFilter {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "saved":
		return ViewSaved
	case "liked":
		return ViewLiked
	default:
		return ViewAll
	}
}

// Filter returns a new slice of the posts matching f in their original
// order. The input slice is never modified.
func Filter(posts []Post, f ViewFilter) []Post {
	if f == ViewAll {
		return slices.Clone(posts)
	}
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		switch {
		case f == ViewSaved && p.Saved:
			out = append(out, p)
		case f == ViewLiked && p.Liked:
			out = append(out, p)
		}
	}
	return out
}
