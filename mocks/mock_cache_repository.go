package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"encomendas/internal/domain"
)

// MockCacheRepository is a mock implementation of port.CacheRepository.
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Lookup(ctx context.Context, fileHash string) (*domain.CacheEntry, error) {
	args := m.Called(ctx, fileHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CacheEntry), args.Error(1)
}

func (m *MockCacheRepository) Store(ctx context.Context, fileHash, originalName string, result *domain.ParseResult, ttlHours int) error {
	args := m.Called(ctx, fileHash, originalName, result, ttlHours)
	return args.Error(0)
}

func (m *MockCacheRepository) SweepExpired(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockCacheRepository) Stats(ctx context.Context) (*domain.CacheStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CacheStats), args.Error(1)
}
