package mocks

import (
	"context"

	"docregistry/internal/model"
	"docregistry/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockRegistryService struct {
	mock.Mock
}

func (m *MockRegistryService) RegisterUser(ctx context.Context, caller string, req service.RegisterUserRequest) (*model.UserProfile, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserProfile), args.Error(1)
}

func (m *MockRegistryService) AssignRole(ctx context.Context, caller, target string, role model.Role) (*model.UserProfile, error) {
	args := m.Called(ctx, caller, target, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserProfile), args.Error(1)
}

func (m *MockRegistryService) GetUserProfile(ctx context.Context, caller string) (*model.UserProfile, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserProfile), args.Error(1)
}

func (m *MockRegistryService) ListUsers(ctx context.Context, caller string) ([]model.UserProfile, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserProfile), args.Error(1)
}

func (m *MockRegistryService) UploadDocument(ctx context.Context, caller string, req service.UploadDocumentRequest) (*model.Document, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockRegistryService) DownloadDocument(ctx context.Context, caller, id string) ([]byte, *model.Document, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]byte), args.Get(1).(*model.Document), args.Error(2)
}

func (m *MockRegistryService) GetDocument(ctx context.Context, caller, id string) (*model.Document, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockRegistryService) ListDocuments(ctx context.Context, caller string) ([]model.Document, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}
