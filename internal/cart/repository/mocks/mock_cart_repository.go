package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/davelara/shopper-cart/internal/cart/domain"
)

type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) ListEntriesByUser(ctx context.Context, userID string) ([]domain.CartEntry, error) {
	args := m.Called(ctx, userID)
	if e := args.Get(0); e != nil {
		return e.([]domain.CartEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCartRepository) GetEntryByID(ctx context.Context, id string) (*domain.CartEntry, error) {
	args := m.Called(ctx, id)
	if e := args.Get(0); e != nil {
		return e.(*domain.CartEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCartRepository) FindEntryByProduct(ctx context.Context, userID, productID string) (*domain.CartEntry, error) {
	args := m.Called(ctx, userID, productID)
	if e := args.Get(0); e != nil {
		return e.(*domain.CartEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCartRepository) CreateEntry(ctx context.Context, e *domain.CartEntry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockCartRepository) UpdateEntryQuantity(ctx context.Context, id string, quantity int) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

func (m *MockCartRepository) DeleteEntry(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCartRepository) CountEntriesByProduct(ctx context.Context, productID string) (int, error) {
	args := m.Called(ctx, productID)
	return args.Int(0), args.Error(1)
}

func (m *MockCartRepository) ListEntriesOlderThan(ctx context.Context, cutoff time.Time) ([]domain.CartEntry, error) {
	args := m.Called(ctx, cutoff)
	if e := args.Get(0); e != nil {
		return e.([]domain.CartEntry), args.Error(1)
	}
	return nil, args.Error(1)
}
