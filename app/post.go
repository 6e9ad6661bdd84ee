package app

import "github.com/CrestNiraj12/flick/domain"

// PostService owns the post collection and its persisted mirror.
//
// Mutations that fail to persist still apply in memory and return an error
// matching domain.ErrPersistence alongside the new state.
type PostService interface {
	// Posts returns the collection, newest first.
	Posts() []domain.Post

	// Create validates the input, prepends a new post and persists.
	Create(in domain.NewPost) (domain.Post, error)

	// ToggleLiked flips the liked flag. Unknown ids are a no-op.
	ToggleLiked(id string) ([]domain.Post, error)

	// ToggleSaved flips the saved flag. Unknown ids are a no-op.
	ToggleSaved(id string) ([]domain.Post, error)

	// Delete removes a post by ID. Unknown ids are a no-op.
	Delete(id string) ([]domain.Post, error)

	// ClearAll removes every post and the persisted key.
	ClearAll() ([]domain.Post, error)
}
