// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
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

// userRepository implements the repository.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a repository.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	return repo.findOne(ctx, "id = ?", id)
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return repo.findOne(ctx, "email = ?", email)
}

// FindByUsername retrieves a single user by their username.
func (repo *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return repo.findOne(ctx, "username = ?", username)
}

func (repo *userRepository) findOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).Where(query, arg).Take(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find user")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user. A unique violation that slipped past the
// caller's pre-checks is reported as the same conflict the pre-check gives.
//
// TranslateError reduces the violation to gorm.ErrDuplicatedKey without the
// constraint name, so the clashing column is looked up afterwards. The insert
// runs in a nested transaction (a savepoint inside an outer one) so that
// lookup still works when the caller's transaction saw the failed insert.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(userM).Error
	})
	if err != nil {
		if isUniqueConstraintViolation(err) {
			return userConflict(ctx, user, repo.taken)
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt

	return nil
}

// MarkConfirmed flips the confirmed flag. PostgreSQL counts matched rows, so
// re-confirming an already confirmed user still affects one row.
func (repo *userRepository) MarkConfirmed(ctx context.Context, email string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("email = ?", email).
		Update("confirmed", true)

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to confirm user")
	}

	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// takenFunc reports whether some user row already holds value in column.
type takenFunc func(ctx context.Context, column, value string) (bool, error)

func (repo *userRepository) taken(ctx context.Context, column, value string) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where(column+" = ?", value).
		Limit(1).
		Count(&count).Error

	return count > 0, err
}

// userConflict picks the field-specific conflict for a duplicate user, email
// first. A failed or inconclusive lookup still yields the generic conflict.
func userConflict(ctx context.Context, user *entity.User, taken takenFunc) error {
	checks := []struct {
		column string
		value  string
		err    error
	}{
		{column: "email", value: user.Email, err: domainerrors.ErrEmailTaken},
		{column: "username", value: user.Username, err: domainerrors.ErrUsernameTaken},
	}

	for _, check := range checks {
		exists, err := taken(ctx, check.column, check.value)
		if err != nil {
			return domainerrors.ErrConflict
		}
		if exists {
			return check.err
		}
	}

	return domainerrors.ErrConflict
}

// --- Mapper Functions ---

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:           data.ID,
		Email:        data.Email,
		Username:     data.Username,
		PasswordHash: data.Password,
		Confirmed:    data.Confirmed,
		CreatedAt:    data.CreatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:        data.ID,
		Email:     data.Email,
		Username:  data.Username,
		Password:  data.PasswordHash,
		Confirmed: data.Confirmed,
		CreatedAt: data.CreatedAt,
	}
}
