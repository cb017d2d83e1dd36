package handler

import (
	"strconv"
	"time"

	"storeapi/internal/domain/entity"
	domainerrors "storeapi/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// PostResponse is a post as returned by create and update.
type PostResponse struct {
	ID        int64     `json:"id"`
	Body      string    `json:"body"`
	UserID    int64     `json:"user_id"`
	ImageURL  *string   `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

// PostWithLikesResponse adds the like count and author to a post.
type PostWithLikesResponse struct {
	PostResponse
	Likes    int64  `json:"likes"`
	Username string `json:"username"`
}

// PostWithCommentsResponse is a post and its comments.
type PostWithCommentsResponse struct {
	Post     PostWithLikesResponse `json:"post"`
	Comments []CommentResponse     `json:"comments"`
}

// CommentResponse is a comment with its author's username.
type CommentResponse struct {
	ID        int64     `json:"id"`
	Body      string    `json:"body"`
	PostID    int64     `json:"post_id"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// LikeResponse is a stored like.
type LikeResponse struct {
	ID     int64 `json:"id"`
	PostID int64 `json:"post_id"`
	UserID int64 `json:"user_id"`
}

func toPostResponse(p *entity.Post) PostResponse {
	return PostResponse{
		ID:        p.ID,
		Body:      p.Body,
		UserID:    p.UserID,
		ImageURL:  p.ImageURL,
		CreatedAt: p.CreatedAt,
	}
}

func toPostWithLikesResponse(p *entity.PostWithLikes) PostWithLikesResponse {
	return PostWithLikesResponse{
		PostResponse: toPostResponse(&p.Post),
		Likes:        p.Likes,
		Username:     p.Username,
	}
}

func toPostWithLikesResponses(posts []*entity.PostWithLikes) []PostWithLikesResponse {
	out := make([]PostWithLikesResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostWithLikesResponse(p))
	}

	return out
}

func toCommentResponse(c *entity.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		Body:      c.Body,
		PostID:    c.PostID,
		UserID:    c.UserID,
		Username:  c.Username,
		CreatedAt: c.CreatedAt,
	}
}

func toCommentResponses(comments []*entity.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, toCommentResponse(c))
	}

	return out
}

func toLikeResponse(l *entity.Like) LikeResponse {
	return LikeResponse{ID: l.ID, PostID: l.PostID, UserID: l.UserID}
}

// bindAndValidate binds the request body and runs struct validation.
// Malformed bodies are reported as validation failures.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.ErrValidationFailed.WithMessage("malformed request body")
	}

	return c.Validate(req)
}

// int64Param parses a positive numeric path parameter.
func int64Param(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domainerrors.ErrValidationFailed.WithMessage("invalid " + name)
	}

	return id, nil
}
