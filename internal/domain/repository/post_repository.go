package repository

import (
	"context"
	"errors"

	"storeapi/internal/domain/entity"
)

// ErrPostNotFound is returned when a post is not found.
var ErrPostNotFound = errors.New("post not found")

// PostRepository defines persistence operations for posts and their read models.
type PostRepository interface {
	// Create persists a new post and fills its generated fields.
	Create(ctx context.Context, post *entity.Post) error

	// FindByID retrieves the raw post row.
	FindByID(ctx context.Context, id int64) (*entity.Post, error)

	// Update writes the mutable fields (body, image) of an existing post.
	Update(ctx context.Context, post *entity.Post) error

	// Delete removes the post row only; dependents must be removed first.
	Delete(ctx context.Context, id int64) error

	// FindWithLikes retrieves a post with its like count and author username.
	FindWithLikes(ctx context.Context, id int64) (*entity.PostWithLikes, error)

	// ListWithLikes lists all posts in the requested order.
	ListWithLikes(ctx context.Context, sorting entity.PostSorting) ([]*entity.PostWithLikes, error)

	// ListByUserWithLikes lists a user's posts, newest first.
	ListByUserWithLikes(ctx context.Context, userID int64) ([]*entity.PostWithLikes, error)
}
