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

// likeRepository implements the repository.LikeRepository interface.
type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository is the constructor for likeRepository.
func NewLikeRepository(db *gorm.DB) repository.LikeRepository {
	return &likeRepository{db: db}
}

// Create persists a new like. The (post_id, user_id) unique index turns a
// concurrent double like into ErrAlreadyLiked.
func (repo *likeRepository) Create(ctx context.Context, like *entity.Like) error {
	likeM := fromLikeDomain(like)

	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(likeM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrAlreadyLiked
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrPostNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create like")
	}

	like.ID = likeM.ID
	like.CreatedAt = likeM.CreatedAt

	return nil
}

// FindByPostAndUser retrieves the like a user left on a post.
func (repo *likeRepository) FindByPostAndUser(ctx context.Context, postID, userID int64) (*entity.Like, error) {
	var likeM model.LikeModel

	if err := repo.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Take(&likeM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrLikeNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find like")
	}

	return toLikeDomain(&likeM), nil
}

// DeleteByPost removes every like attached to the post.
func (repo *likeRepository) DeleteByPost(ctx context.Context, postID int64) error {
	if err := repo.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&model.LikeModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete likes")
	}

	return nil
}

// --- Mapper Functions ---

func toLikeDomain(data *model.LikeModel) *entity.Like {
	return &entity.Like{
		ID:        data.ID,
		PostID:    data.PostID,
		UserID:    data.UserID,
		CreatedAt: data.CreatedAt,
	}
}

func fromLikeDomain(data *entity.Like) *model.LikeModel {
	return &model.LikeModel{
		ID:        data.ID,
		PostID:    data.PostID,
		UserID:    data.UserID,
		CreatedAt: data.CreatedAt,
	}
}
