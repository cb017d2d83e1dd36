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

// commentRepository implements the repository.CommentRepository interface.
type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository is the constructor for commentRepository.
func NewCommentRepository(db *gorm.DB) repository.CommentRepository {
	return &commentRepository{db: db}
}

// Create persists a new comment and reads back the author username.
func (repo *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	commentM := fromCommentDomain(comment)

	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(commentM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrPostNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create comment")
	}

	comment.ID = commentM.ID
	comment.CreatedAt = commentM.CreatedAt

	var row model.CommentRow
	if err := withAuthor(repo.db.WithContext(ctx)).Where("comments.id = ?", comment.ID).Take(&row).Error; err != nil {
		return errors.Wrap(err, "failed to read back comment author")
	}
	comment.Username = row.Username

	return nil
}

// ListByPost lists a post's comments, oldest first.
func (repo *commentRepository) ListByPost(ctx context.Context, postID int64) ([]*entity.Comment, error) {
	var rows []*model.CommentRow

	if err := withAuthor(repo.db.WithContext(ctx)).
		Where("comments.post_id = ?", postID).
		Order("comments.id ASC").
		Find(&rows).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list comments")
	}

	comments := make([]*entity.Comment, 0, len(rows))
	for _, row := range rows {
		comments = append(comments, toCommentDomain(row))
	}

	return comments, nil
}

// DeleteByPost removes every comment attached to the post.
func (repo *commentRepository) DeleteByPost(ctx context.Context, postID int64) error {
	if err := repo.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&model.CommentModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete comments")
	}

	return nil
}

func withAuthor(db *gorm.DB) *gorm.DB {
	return db.Table("comments").
		Select("comments.id, comments.body, comments.post_id, comments.user_id, comments.created_at, " +
			"COALESCE(users.username, '" + unknownAuthor + "') AS username").
		Joins("LEFT JOIN users ON users.id = comments.user_id")
}

// --- Mapper Functions ---

func toCommentDomain(row *model.CommentRow) *entity.Comment {
	return &entity.Comment{
		ID:        row.ID,
		Body:      row.Body,
		PostID:    row.PostID,
		UserID:    row.UserID,
		Username:  row.Username,
		CreatedAt: row.CreatedAt,
	}
}

func fromCommentDomain(data *entity.Comment) *model.CommentModel {
	return &model.CommentModel{
		ID:        data.ID,
		Body:      data.Body,
		PostID:    data.PostID,
		UserID:    data.UserID,
		CreatedAt: data.CreatedAt,
	}
}
