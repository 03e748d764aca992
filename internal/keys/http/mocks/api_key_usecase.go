// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/odiadev/keygate/internal/keys/domain"
)

// MockAPIKeyUseCase is a mock implementation of APIKeyUseCase for testing.
type MockAPIKeyUseCase struct {
	mock.Mock
}

// Issue mocks the Issue method of APIKeyUseCase.
func (m *MockAPIKeyUseCase) Issue(
	ctx context.Context,
	input *domain.IssueKeyInput,
) (*domain.IssueKeyOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IssueKeyOutput), args.Error(1)
}

// Verify mocks the Verify method of APIKeyUseCase.
func (m *MockAPIKeyUseCase) Verify(
	ctx context.Context,
	presentedKey, origin string,
) (domain.Verification, error) {
	args := m.Called(ctx, presentedKey, origin)
	return args.Get(0).(domain.Verification), args.Error(1)
}

// Revoke mocks the Revoke method of APIKeyUseCase.
func (m *MockAPIKeyUseCase) Revoke(ctx context.Context, prefix string) error {
	args := m.Called(ctx, prefix)
	return args.Error(0)
}

// List mocks the List method of APIKeyUseCase.
func (m *MockAPIKeyUseCase) List(
	ctx context.Context,
	offset, limit int,
) ([]*domain.APIKey, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.APIKey), args.Error(1)
}
