// Package usecase provides testify mocks of the use case interfaces.
package usecase

import (
	"context"
	"io"

	"storeapi/internal/domain/entity"
	"storeapi/internal/usecase"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockAuthUsecase is a mock of usecase.AuthUsecase.
type MockAuthUsecase struct {
	mock.Mock
}

// NewMockAuthUsecase creates a mock whose expectations are asserted on cleanup.
func NewMockAuthUsecase(t testingT) *MockAuthUsecase {
	m := &MockAuthUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAuthUsecase) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*usecase.RegisterOutput)
	return out, args.Error(1)
}

func (m *MockAuthUsecase) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	args := m.Called(ctx, email, password)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *MockAuthUsecase) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*usecase.LoginOutput)
	return out, args.Error(1)
}

func (m *MockAuthUsecase) CurrentUser(ctx context.Context, accessToken string) (*entity.User, error) {
	args := m.Called(ctx, accessToken)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *MockAuthUsecase) ConfirmEmail(ctx context.Context, confirmationToken string) error {
	return m.Called(ctx, confirmationToken).Error(0)
}

// MockPostUsecase is a mock of usecase.PostUsecase.
type MockPostUsecase struct {
	mock.Mock
}

// NewMockPostUsecase creates a mock whose expectations are asserted on cleanup.
func NewMockPostUsecase(t testingT) *MockPostUsecase {
	m := &MockPostUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPostUsecase) CreatePost(ctx context.Context, user *entity.User, input usecase.CreatePostInput) (*entity.Post, error) {
	args := m.Called(ctx, user, input)
	post, _ := args.Get(0).(*entity.Post)
	return post, args.Error(1)
}

func (m *MockPostUsecase) UpdatePost(ctx context.Context, user *entity.User, input usecase.UpdatePostInput) (*entity.Post, error) {
	args := m.Called(ctx, user, input)
	post, _ := args.Get(0).(*entity.Post)
	return post, args.Error(1)
}

func (m *MockPostUsecase) DeletePost(ctx context.Context, user *entity.User, postID int64) error {
	return m.Called(ctx, user, postID).Error(0)
}

func (m *MockPostUsecase) ListPosts(ctx context.Context, sorting entity.PostSorting) ([]*entity.PostWithLikes, error) {
	args := m.Called(ctx, sorting)
	posts, _ := args.Get(0).([]*entity.PostWithLikes)
	return posts, args.Error(1)
}

func (m *MockPostUsecase) GetPostWithComments(ctx context.Context, postID int64) (*entity.PostWithComments, error) {
	args := m.Called(ctx, postID)
	result, _ := args.Get(0).(*entity.PostWithComments)
	return result, args.Error(1)
}

func (m *MockPostUsecase) ListUserPosts(ctx context.Context, userID int64) ([]*entity.PostWithLikes, error) {
	args := m.Called(ctx, userID)
	posts, _ := args.Get(0).([]*entity.PostWithLikes)
	return posts, args.Error(1)
}

func (m *MockPostUsecase) CreateComment(ctx context.Context, user *entity.User, postID int64, body string) (*entity.Comment, error) {
	args := m.Called(ctx, user, postID, body)
	comment, _ := args.Get(0).(*entity.Comment)
	return comment, args.Error(1)
}

func (m *MockPostUsecase) ListComments(ctx context.Context, postID int64) ([]*entity.Comment, error) {
	args := m.Called(ctx, postID)
	comments, _ := args.Get(0).([]*entity.Comment)
	return comments, args.Error(1)
}

func (m *MockPostUsecase) CreateLike(ctx context.Context, user *entity.User, postID int64) (*entity.Like, error) {
	args := m.Called(ctx, user, postID)
	like, _ := args.Get(0).(*entity.Like)
	return like, args.Error(1)
}

// MockUploadUsecase is a mock of usecase.UploadUsecase.
type MockUploadUsecase struct {
	mock.Mock
}

// NewMockUploadUsecase creates a mock whose expectations are asserted on cleanup.
func NewMockUploadUsecase(t testingT) *MockUploadUsecase {
	m := &MockUploadUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockUploadUsecase) UploadImage(ctx context.Context, user *entity.User, input usecase.UploadImageInput) (string, error) {
	args := m.Called(ctx, user, input)
	return args.String(0), args.Error(1)
}

func (m *MockUploadUsecase) OpenImage(ctx context.Context, key string) (io.ReadCloser, string, error) {
	args := m.Called(ctx, key)
	reader, _ := args.Get(0).(io.ReadCloser)
	return reader, args.String(1), args.Error(2)
}
