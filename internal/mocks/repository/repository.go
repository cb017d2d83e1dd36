// Package repository provides testify mocks of the domain repository interfaces.
package repository

import (
	"context"

	"storeapi/internal/domain/entity"
	"storeapi/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockUserRepository is a mock of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

// NewMockUserRepository creates a mock whose expectations are asserted on cleanup.
func NewMockUserRepository(t testingT) *MockUserRepository {
	m := &MockUserRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	args := m.Called(ctx, id)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) MarkConfirmed(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

// MockPostRepository is a mock of repository.PostRepository.
type MockPostRepository struct {
	mock.Mock
}

// NewMockPostRepository creates a mock whose expectations are asserted on cleanup.
func NewMockPostRepository(t testingT) *MockPostRepository {
	m := &MockPostRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPostRepository) Create(ctx context.Context, post *entity.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *MockPostRepository) FindByID(ctx context.Context, id int64) (*entity.Post, error) {
	args := m.Called(ctx, id)
	post, _ := args.Get(0).(*entity.Post)
	return post, args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, post *entity.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPostRepository) FindWithLikes(ctx context.Context, id int64) (*entity.PostWithLikes, error) {
	args := m.Called(ctx, id)
	post, _ := args.Get(0).(*entity.PostWithLikes)
	return post, args.Error(1)
}

func (m *MockPostRepository) ListWithLikes(ctx context.Context, sorting entity.PostSorting) ([]*entity.PostWithLikes, error) {
	args := m.Called(ctx, sorting)
	posts, _ := args.Get(0).([]*entity.PostWithLikes)
	return posts, args.Error(1)
}

func (m *MockPostRepository) ListByUserWithLikes(ctx context.Context, userID int64) ([]*entity.PostWithLikes, error) {
	args := m.Called(ctx, userID)
	posts, _ := args.Get(0).([]*entity.PostWithLikes)
	return posts, args.Error(1)
}

// MockCommentRepository is a mock of repository.CommentRepository.
type MockCommentRepository struct {
	mock.Mock
}

// NewMockCommentRepository creates a mock whose expectations are asserted on cleanup.
func NewMockCommentRepository(t testingT) *MockCommentRepository {
	m := &MockCommentRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postID int64) ([]*entity.Comment, error) {
	args := m.Called(ctx, postID)
	comments, _ := args.Get(0).([]*entity.Comment)
	return comments, args.Error(1)
}

func (m *MockCommentRepository) DeleteByPost(ctx context.Context, postID int64) error {
	return m.Called(ctx, postID).Error(0)
}

// MockLikeRepository is a mock of repository.LikeRepository.
type MockLikeRepository struct {
	mock.Mock
}

// NewMockLikeRepository creates a mock whose expectations are asserted on cleanup.
func NewMockLikeRepository(t testingT) *MockLikeRepository {
	m := &MockLikeRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockLikeRepository) Create(ctx context.Context, like *entity.Like) error {
	return m.Called(ctx, like).Error(0)
}

func (m *MockLikeRepository) FindByPostAndUser(ctx context.Context, postID, userID int64) (*entity.Like, error) {
	args := m.Called(ctx, postID, userID)
	like, _ := args.Get(0).(*entity.Like)
	return like, args.Error(1)
}

func (m *MockLikeRepository) DeleteByPost(ctx context.Context, postID int64) error {
	return m.Called(ctx, postID).Error(0)
}

// MockTransactionManager runs the callback against Factory and records the call.
type MockTransactionManager struct {
	mock.Mock

	Factory repository.RepositoryFactory
}

// NewMockTransactionManager creates a transaction manager that hands out factory.
func NewMockTransactionManager(t testingT, factory repository.RepositoryFactory) *MockTransactionManager {
	m := &MockTransactionManager{Factory: factory}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// Execute returns the configured error when one was set with On("Execute"),
// otherwise the callback's result.
func (m *MockTransactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	args := m.Called(ctx, mock.Anything)
	if err := args.Error(0); err != nil {
		return err
	}

	return fn(m.Factory)
}

// MockRepositoryFactory returns fixed repositories.
type MockRepositoryFactory struct {
	Users    repository.UserRepository
	Posts    repository.PostRepository
	Comments repository.CommentRepository
	Likes    repository.LikeRepository
}

func (f *MockRepositoryFactory) UserRepo() repository.UserRepository       { return f.Users }
func (f *MockRepositoryFactory) PostRepo() repository.PostRepository       { return f.Posts }
func (f *MockRepositoryFactory) CommentRepo() repository.CommentRepository { return f.Comments }
func (f *MockRepositoryFactory) LikeRepo() repository.LikeRepository       { return f.Likes }

func userOrNil(v any) *entity.User {
	user, _ := v.(*entity.User)
	return user
}
