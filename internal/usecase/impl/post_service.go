package impl

import (
	"context"
	"log/slog"

	deliverycontext "storeapi/internal/delivery/context"
	"storeapi/internal/domain/entity"
	domainerrors "storeapi/internal/domain/errors"
	"storeapi/internal/domain/repository"
	"storeapi/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// postService implements the PostUsecase interface.
type postService struct {
	txManager   repository.TransactionManager
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	likeRepo    repository.LikeRepository
	logger      *slog.Logger
}

// PostServiceParams holds dependencies for PostService, injected by Fx.
type PostServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	PostRepo    repository.PostRepository
	CommentRepo repository.CommentRepository
	LikeRepo    repository.LikeRepository
	Logger      *slog.Logger
}

// NewPostService is the constructor for postService.
func NewPostService(params PostServiceParams) usecase.PostUsecase {
	return &postService{
		txManager:   params.TxManager,
		postRepo:    params.PostRepo,
		commentRepo: params.CommentRepo,
		likeRepo:    params.LikeRepo,
		logger:      params.Logger,
	}
}

func (srv *postService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreatePost stores a post owned by user.
func (srv *postService) CreatePost(ctx context.Context, user *entity.User, input usecase.CreatePostInput) (*entity.Post, error) {
	post := &entity.Post{
		Body:     input.Body,
		UserID:   user.ID,
		ImageURL: input.ImageURL,
	}

	if err := srv.postRepo.Create(ctx, post); err != nil {
		return nil, errors.Wrap(err, "failed to create post")
	}

	srv.log(ctx).Debug("Post created", slog.Int64("post_id", post.ID), slog.Int64("user_id", user.ID))

	return post, nil
}

// UpdatePost replaces the body of a post the user owns, and its image when one is given.
func (srv *postService) UpdatePost(ctx context.Context, user *entity.User, input usecase.UpdatePostInput) (*entity.Post, error) {
	var post *entity.Post

	// Ownership check and write share a transaction.
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		postRepo := repoFactory.PostRepo()

		found, err := srv.ownedPost(ctx, postRepo, user, input.PostID, "edit")
		if err != nil {
			return err
		}

		found.Body = input.Body
		if input.ImageURL != nil {
			found.ImageURL = input.ImageURL
		}

		if err := postRepo.Update(ctx, found); err != nil {
			return mapPostErr(err, "failed to update post")
		}

		post = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return post, nil
}

// DeletePost removes likes, then comments, then the post, in one transaction.
func (srv *postService) DeletePost(ctx context.Context, user *entity.User, postID int64) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		postRepo := repoFactory.PostRepo()

		if _, err := srv.ownedPost(ctx, postRepo, user, postID, "delete"); err != nil {
			return err
		}

		if err := repoFactory.LikeRepo().DeleteByPost(ctx, postID); err != nil {
			return errors.Wrap(err, "failed to delete post likes")
		}

		if err := repoFactory.CommentRepo().DeleteByPost(ctx, postID); err != nil {
			return errors.Wrap(err, "failed to delete post comments")
		}

		if err := postRepo.Delete(ctx, postID); err != nil {
			return mapPostErr(err, "failed to delete post")
		}

		return nil
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Post deleted", slog.Int64("post_id", postID), slog.Int64("user_id", user.ID))

	return nil
}

// ListPosts lists every post in the requested order. An empty sorting means newest first.
func (srv *postService) ListPosts(ctx context.Context, sorting entity.PostSorting) ([]*entity.PostWithLikes, error) {
	if sorting == "" {
		sorting = entity.PostSortingNew
	}
	if !sorting.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithMessage("sorting must be one of new, old, most_likes")
	}

	posts, err := srv.postRepo.ListWithLikes(ctx, sorting)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list posts")
	}

	return posts, nil
}

// GetPostWithComments returns one post with its comments.
func (srv *postService) GetPostWithComments(ctx context.Context, postID int64) (*entity.PostWithComments, error) {
	post, err := srv.postRepo.FindWithLikes(ctx, postID)
	if err != nil {
		return nil, mapPostErr(err, "failed to find post")
	}

	comments, err := srv.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list comments")
	}

	return &entity.PostWithComments{
		Post:     post,
		Comments: comments,
	}, nil
}

// ListUserPosts lists a user's posts, newest first. An unknown user has no posts.
func (srv *postService) ListUserPosts(ctx context.Context, userID int64) ([]*entity.PostWithLikes, error) {
	posts, err := srv.postRepo.ListByUserWithLikes(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list user posts")
	}

	return posts, nil
}

// CreateComment attaches a comment to an existing post.
func (srv *postService) CreateComment(ctx context.Context, user *entity.User, postID int64, body string) (*entity.Comment, error) {
	if err := srv.ensurePostExists(ctx, postID); err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		Body:   body,
		PostID: postID,
		UserID: user.ID,
	}

	if err := srv.commentRepo.Create(ctx, comment); err != nil {
		return nil, mapPostErr(err, "failed to create comment")
	}

	return comment, nil
}

// ListComments lists a post's comments, oldest first. An unknown post has no
// comments, so it yields an empty list rather than an error.
func (srv *postService) ListComments(ctx context.Context, postID int64) ([]*entity.Comment, error) {
	comments, err := srv.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list comments")
	}

	return comments, nil
}

// CreateLike records that user likes the post. A second like fails with ErrAlreadyLiked.
func (srv *postService) CreateLike(ctx context.Context, user *entity.User, postID int64) (*entity.Like, error) {
	if err := srv.ensurePostExists(ctx, postID); err != nil {
		return nil, err
	}

	_, err := srv.likeRepo.FindByPostAndUser(ctx, postID, user.ID)
	switch {
	case err == nil:
		return nil, domainerrors.ErrAlreadyLiked
	case !errors.Is(err, repository.ErrLikeNotFound):
		return nil, errors.Wrap(err, "failed to check existing like")
	}

	like := &entity.Like{
		PostID: postID,
		UserID: user.ID,
	}

	if err := srv.likeRepo.Create(ctx, like); err != nil {
		return nil, mapPostErr(err, "failed to create like")
	}

	return like, nil
}

func (srv *postService) ensurePostExists(ctx context.Context, postID int64) error {
	if _, err := srv.postRepo.FindByID(ctx, postID); err != nil {
		return mapPostErr(err, "failed to find post")
	}

	return nil
}

// ownedPost loads the post through postRepo, which may be transaction-bound,
// and checks that user created it. action names the attempted change in the 403 message.
func (srv *postService) ownedPost(ctx context.Context, postRepo repository.PostRepository, user *entity.User, postID int64, action string) (*entity.Post, error) {
	post, err := postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, mapPostErr(err, "failed to find post")
	}

	if !post.IsOwnedBy(user.ID) {
		srv.log(ctx).Warn("Rejected modification of foreign post",
			slog.Int64("post_id", postID),
			slog.Int64("user_id", user.ID),
		)

		return nil, domainerrors.ErrForbidden.WithMessage("not authorized to " + action + " this post")
	}

	return post, nil
}

// mapPostErr converts the repository's not-found sentinel into the 404 domain error.
func mapPostErr(err error, message string) error {
	if errors.Is(err, repository.ErrPostNotFound) {
		return domainerrors.ErrPostNotFound
	}

	return errors.Wrap(err, message)
}
