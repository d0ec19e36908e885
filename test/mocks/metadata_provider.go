package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kinomedia/kino/internal/catalog/domain"
	"github.com/kinomedia/kino/internal/catalog/service"
)

// MockMetadataProvider is a mock implementation of service.MetadataProvider.
type MockMetadataProvider struct {
	mock.Mock
}

func (m *MockMetadataProvider) Browse(ctx context.Context, category domain.Category, page int) (*domain.ProviderPage, error) {
	args := m.Called(ctx, category, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProviderPage), args.Error(1)
}

func (m *MockMetadataProvider) Search(ctx context.Context, query string, page int) (*domain.ProviderPage, error) {
	args := m.Called(ctx, query, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProviderPage), args.Error(1)
}

func (m *MockMetadataProvider) Discover(ctx context.Context, query service.DiscoverQuery, page int) (*domain.ProviderPage, error) {
	args := m.Called(ctx, query, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProviderPage), args.Error(1)
}

func (m *MockMetadataProvider) GetDetail(ctx context.Context, providerID string) (*domain.ProviderDetail, error) {
	args := m.Called(ctx, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProviderDetail), args.Error(1)
}

func (m *MockMetadataProvider) GetGenres(ctx context.Context) ([]domain.Genre, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Genre), args.Error(1)
}
