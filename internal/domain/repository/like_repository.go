package repository

import (
	"context"
	"errors"

	"storeapi/internal/domain/entity"
)

// ErrLikeNotFound is returned when no like exists for a (post, user) pair.
var ErrLikeNotFound = errors.New("like not found")

// LikeRepository defines persistence operations for likes.
type LikeRepository interface {
	// Create persists a new like. A duplicate (post, user) pair surfaces as domainerrors.ErrAlreadyLiked.
	Create(ctx context.Context, like *entity.Like) error

	// FindByPostAndUser retrieves the like a user left on a post.
	FindByPostAndUser(ctx context.Context, postID, userID int64) (*entity.Like, error)

	// DeleteByPost removes every like attached to the post.
	DeleteByPost(ctx context.Context, postID int64) error
}
