package repository

import (
	"context"

	"storeapi/internal/domain/entity"
)

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	// Create persists a new comment and fills its generated fields and author username.
	Create(ctx context.Context, comment *entity.Comment) error

	// ListByPost lists a post's comments, oldest first, with author usernames.
	ListByPost(ctx context.Context, postID int64) ([]*entity.Comment, error)

	// DeleteByPost removes every comment attached to the post.
	DeleteByPost(ctx context.Context, postID int64) error
}
