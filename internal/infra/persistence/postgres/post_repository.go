package postgres

import (
	"context"

	"storeapi/internal/domain/entity"
	domainerrors "storeapi/internal/domain/errors"
	"storeapi/internal/domain/repository"
	"storeapi/internal/errors"
	"storeapi/internal/infra/persistence/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// unknownAuthor is shown for posts whose author row no longer exists.
const unknownAuthor = "Unknown"

// postRepository implements the repository.PostRepository interface.
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository is the constructor for postRepository.
func NewPostRepository(db *gorm.DB) repository.PostRepository {
	return &postRepository{db: db}
}

// Create persists a new post.
func (repo *postRepository) Create(ctx context.Context, post *entity.Post) error {
	postM := fromPostDomain(post)

	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(postM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WithMessage("unknown author")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create post")
	}

	post.ID = postM.ID
	post.CreatedAt = postM.CreatedAt

	return nil
}

// FindByID retrieves the raw post row.
func (repo *postRepository) FindByID(ctx context.Context, id int64) (*entity.Post, error) {
	var postM model.PostModel

	if err := repo.db.WithContext(ctx).Where("id = ?", id).Take(&postM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPostNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find post")
	}

	return toPostDomain(&postM), nil
}

// Update writes body and image_url. image_url is written even when nil so it can be cleared.
func (repo *postRepository) Update(ctx context.Context, post *entity.Post) error {
	result := repo.db.WithContext(ctx).
		Model(&model.PostModel{}).
		Where("id = ?", post.ID).
		Updates(map[string]any{
			"body":      post.Body,
			"image_url": post.ImageURL,
		})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update post")
	}

	if result.RowsAffected == 0 {
		return repository.ErrPostNotFound
	}

	return nil
}

// Delete removes the post row.
func (repo *postRepository) Delete(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.PostModel{})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete post")
	}

	if result.RowsAffected == 0 {
		return repository.ErrPostNotFound
	}

	return nil
}

// FindWithLikes retrieves a post with its like count and author username.
func (repo *postRepository) FindWithLikes(ctx context.Context, id int64) (*entity.PostWithLikes, error) {
	var row model.PostWithLikesRow

	if err := withLikes(repo.db.WithContext(ctx)).Where("posts.id = ?", id).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPostNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find post")
	}

	return toPostWithLikesDomain(&row), nil
}

// ListWithLikes lists all posts in the requested order.
func (repo *postRepository) ListWithLikes(ctx context.Context, sorting entity.PostSorting) ([]*entity.PostWithLikes, error) {
	var rows []*model.PostWithLikesRow

	if err := withLikes(repo.db.WithContext(ctx)).Order(orderFor(sorting)).Find(&rows).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list posts")
	}

	return toPostsWithLikesDomain(rows), nil
}

// ListByUserWithLikes lists a user's posts, newest first.
func (repo *postRepository) ListByUserWithLikes(ctx context.Context, userID int64) ([]*entity.PostWithLikes, error) {
	var rows []*model.PostWithLikesRow

	if err := withLikes(repo.db.WithContext(ctx)).
		Where("posts.user_id = ?", userID).
		Order(orderFor(entity.PostSortingNew)).
		Find(&rows).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list user posts")
	}

	return toPostsWithLikesDomain(rows), nil
}

// withLikes builds the aggregated read model: like count through a LEFT JOIN
// on likes and the author name through a LEFT JOIN on users.
func withLikes(db *gorm.DB) *gorm.DB {
	return db.Table("posts").
		Select("posts.id, posts.body, posts.user_id, posts.image_url, posts.created_at, " +
			"COUNT(likes.id) AS likes, COALESCE(users.username, '" + unknownAuthor + "') AS username").
		Joins("LEFT JOIN likes ON likes.post_id = posts.id").
		Joins("LEFT JOIN users ON users.id = posts.user_id").
		Group("posts.id, users.username")
}

func orderFor(sorting entity.PostSorting) string {
	switch sorting {
	case entity.PostSortingOld:
		return "posts.id ASC"
	case entity.PostSortingMostLikes:
		return "likes DESC, posts.id DESC"
	default:
		return "posts.id DESC"
	}
}

// --- Mapper Functions ---

func toPostDomain(data *model.PostModel) *entity.Post {
	if data == nil {
		return nil
	}

	return &entity.Post{
		ID:        data.ID,
		Body:      data.Body,
		UserID:    data.UserID,
		ImageURL:  data.ImageURL,
		CreatedAt: data.CreatedAt,
	}
}

func fromPostDomain(data *entity.Post) *model.PostModel {
	if data == nil {
		return nil
	}

	return &model.PostModel{
		ID:        data.ID,
		Body:      data.Body,
		UserID:    data.UserID,
		ImageURL:  data.ImageURL,
		CreatedAt: data.CreatedAt,
	}
}

func toPostWithLikesDomain(row *model.PostWithLikesRow) *entity.PostWithLikes {
	return &entity.PostWithLikes{
		Post: entity.Post{
			ID:        row.ID,
			Body:      row.Body,
			UserID:    row.UserID,
			ImageURL:  row.ImageURL,
			CreatedAt: row.CreatedAt,
		},
		Likes:    row.Likes,
		Username: row.Username,
	}
}

func toPostsWithLikesDomain(rows []*model.PostWithLikesRow) []*entity.PostWithLikes {
	posts := make([]*entity.PostWithLikes, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, toPostWithLikesDomain(row))
	}

	return posts
}
