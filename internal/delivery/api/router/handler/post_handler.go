package handler

import (
	"log/slog"
	"net/http"

	"storeapi/internal/delivery/api/response"
	"storeapi/internal/domain/entity"
	"storeapi/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// PostHandlerParams holds dependencies for PostHandler, injected by Fx.
type PostHandlerParams struct {
	fx.In

	PostUC usecase.PostUsecase
	Logger *slog.Logger
}

// PostHandler serves posts, their comments and likes.
type PostHandler struct {
	postUC usecase.PostUsecase
	logger *slog.Logger
}

// NewPostHandler is the constructor for PostHandler
func NewPostHandler(params PostHandlerParams) *PostHandler {
	return &PostHandler{
		postUC: params.PostUC,
		logger: params.Logger,
	}
}

// PostRequest is the body of post create and update.
type PostRequest struct {
	Body     string  `json:"body" validate:"required"`
	ImageURL *string `json:"image_url" validate:"omitempty,http_url,max=2048"`
}

// CommentRequest is the body of POST /comment.
type CommentRequest struct {
	Body   string `json:"body" validate:"required"`
	PostID int64  `json:"post_id" validate:"required,gt=0"`
}

// LikeRequest is the body of POST /like.
type LikeRequest struct {
	PostID int64 `json:"post_id" validate:"required,gt=0"`
}

// CreatePost handles POST /post.
func (h *PostHandler) CreatePost(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req PostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.postUC.CreatePost(c.Request().Context(), user, usecase.CreatePostInput{
		Body:     req.Body,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toPostResponse(post))
}

// ListPosts handles GET /post?sorting=.
func (h *PostHandler) ListPosts(c echo.Context) error {
	sorting := entity.PostSorting(c.QueryParam("sorting"))

	posts, err := h.postUC.ListPosts(c.Request().Context(), sorting)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toPostWithLikesResponses(posts))
}

// GetPost handles GET /post/:id and embeds the comments.
func (h *PostHandler) GetPost(c echo.Context) error {
	postID, err := int64Param(c, "id")
	if err != nil {
		return err
	}

	result, err := h.postUC.GetPostWithComments(c.Request().Context(), postID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, PostWithCommentsResponse{
		Post:     toPostWithLikesResponse(result.Post),
		Comments: toCommentResponses(result.Comments),
	})
}

// UpdatePost handles PUT /post/:id.
func (h *PostHandler) UpdatePost(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	postID, err := int64Param(c, "id")
	if err != nil {
		return err
	}

	var req PostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.postUC.UpdatePost(c.Request().Context(), user, usecase.UpdatePostInput{
		PostID:   postID,
		Body:     req.Body,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toPostResponse(post))
}

// DeletePost handles DELETE /post/:id.
func (h *PostHandler) DeletePost(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	postID, err := int64Param(c, "id")
	if err != nil {
		return err
	}

	if err := h.postUC.DeletePost(c.Request().Context(), user, postID); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}

// ListUserPosts handles GET /user/:id/posts.
func (h *PostHandler) ListUserPosts(c echo.Context) error {
	userID, err := int64Param(c, "id")
	if err != nil {
		return err
	}

	posts, err := h.postUC.ListUserPosts(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toPostWithLikesResponses(posts))
}

// CreateComment handles POST /comment.
func (h *PostHandler) CreateComment(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req CommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.postUC.CreateComment(c.Request().Context(), user, req.PostID, req.Body)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toCommentResponse(comment))
}

// ListComments handles GET /post/:id/comment.
func (h *PostHandler) ListComments(c echo.Context) error {
	postID, err := int64Param(c, "id")
	if err != nil {
		return err
	}

	comments, err := h.postUC.ListComments(c.Request().Context(), postID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCommentResponses(comments))
}

// CreateLike handles POST /like.
func (h *PostHandler) CreateLike(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req LikeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	like, err := h.postUC.CreateLike(c.Request().Context(), user, req.PostID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toLikeResponse(like))
}
