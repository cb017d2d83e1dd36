package usecase

import (
	"context"

	"storeapi/internal/domain/entity"
)

// CreatePostInput carries the fields of a new post.
type CreatePostInput struct {
	Body     string
	ImageURL *string
}

// UpdatePostInput replaces the mutable fields of an existing post.
type UpdatePostInput struct {
	PostID   int64
	Body     string
	ImageURL *string
}

// PostUsecase defines post, comment and like operations.
// Mutations take the resolved current user; listings are public.
type PostUsecase interface {
	CreatePost(ctx context.Context, user *entity.User, input CreatePostInput) (*entity.Post, error)
	UpdatePost(ctx context.Context, user *entity.User, input UpdatePostInput) (*entity.Post, error)
	DeletePost(ctx context.Context, user *entity.User, postID int64) error

	ListPosts(ctx context.Context, sorting entity.PostSorting) ([]*entity.PostWithLikes, error)
	GetPostWithComments(ctx context.Context, postID int64) (*entity.PostWithComments, error)
	ListUserPosts(ctx context.Context, userID int64) ([]*entity.PostWithLikes, error)

	CreateComment(ctx context.Context, user *entity.User, postID int64, body string) (*entity.Comment, error)
	ListComments(ctx context.Context, postID int64) ([]*entity.Comment, error)

	CreateLike(ctx context.Context, user *entity.User, postID int64) (*entity.Like, error)
}
