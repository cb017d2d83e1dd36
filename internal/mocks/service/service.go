// Package service provides testify mocks of the domain service interfaces.
package service

import (
	"context"
	"io"
	"time"

	"storeapi/internal/domain/entity"
	"storeapi/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockPasswordHasher is a mock of service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

// NewMockPasswordHasher creates a mock whose expectations are asserted on cleanup.
func NewMockPasswordHasher(t testingT) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

// MockTokenService is a mock of service.TokenService.
type MockTokenService struct {
	mock.Mock
}

// NewMockTokenService creates a mock whose expectations are asserted on cleanup.
func NewMockTokenService(t testingT) *MockTokenService {
	m := &MockTokenService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTokenService) Issue(subject string, purpose entity.TokenPurpose) (string, error) {
	args := m.Called(subject, purpose)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) Resolve(token string, expected entity.TokenPurpose) (string, error) {
	args := m.Called(token, expected)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) TTL(purpose entity.TokenPurpose) time.Duration {
	return m.Called(purpose).Get(0).(time.Duration)
}

// MockEventPublisher is a mock of service.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

// NewMockEventPublisher creates a mock whose expectations are asserted on cleanup.
func NewMockEventPublisher(t testingT) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockEventPublisher) PublishUserRegistered(ctx context.Context, event *service.UserRegisteredEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockEventPublisher) Close() error {
	return m.Called().Error(0)
}

// MockImageStore is a mock of service.ImageStore.
type MockImageStore struct {
	mock.Mock
}

// NewMockImageStore creates a mock whose expectations are asserted on cleanup.
func NewMockImageStore(t testingT) *MockImageStore {
	m := &MockImageStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockImageStore) Put(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, filename, contentType, data)
	return args.String(0), args.Error(1)
}

func (m *MockImageStore) Open(ctx context.Context, key string) (io.ReadCloser, string, error) {
	args := m.Called(ctx, key)
	reader, _ := args.Get(0).(io.ReadCloser)
	return reader, args.String(1), args.Error(2)
}
